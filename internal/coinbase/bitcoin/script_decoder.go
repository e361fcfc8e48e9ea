package bitcoin

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// scriptDecoder extracts the payout address of an output.
type scriptDecoder struct {
	params *chaincfg.Params
}

// decodeAddress returns the first address paid by vout, or nil for scripts without one
// (OP_RETURN commitments, bare multisig).
func (d *scriptDecoder) decodeAddress(vout btcjson.Vout) (*string, error) {
	if vout.ScriptPubKey.Address != "" {
		addr := vout.ScriptPubKey.Address
		return &addr, nil
	}
	if len(vout.ScriptPubKey.Addresses) > 0 {
		addr := vout.ScriptPubKey.Addresses[0]
		return &addr, nil
	}
	if vout.ScriptPubKey.Hex == "" {
		return nil, nil
	}

	scriptBytes, err := hex.DecodeString(vout.ScriptPubKey.Hex)
	if err != nil {
		return nil, err
	}
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(scriptBytes, d.params)
	if err != nil {
		return nil, err
	}
	if class == txscript.MultiSigTy || len(addrs) == 0 {
		return nil, nil
	}
	addr := addrs[0].EncodeAddress()
	return &addr, nil
}
