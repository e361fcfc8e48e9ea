package model

// TxInput is a transaction input in explorer JSON form.
type TxInput struct {
	TxID         string   `json:"txid"`
	Vout         uint64   `json:"vout"`
	ScriptSig    string   `json:"scriptsig"`
	ScriptSigAsm string   `json:"scriptsig_asm"`
	Witness      []string `json:"witness"`
	IsCoinbase   bool     `json:"is_coinbase"`
	Sequence     uint64   `json:"sequence"`
}

// TxOutput is a transaction output; Value is in satoshis.
type TxOutput struct {
	ScriptPubKey        string  `json:"scriptpubkey"`
	ScriptPubKeyAsm     string  `json:"scriptpubkey_asm"`
	ScriptPubKeyType    string  `json:"scriptpubkey_type"`
	ScriptPubKeyAddress *string `json:"scriptpubkey_address,omitempty"`
	Value               uint64  `json:"value"`
}

// TxStatus carries the confirmation data of a transaction.
type TxStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight uint64 `json:"block_height"`
	BlockHash   string `json:"block_hash"`
	BlockTime   uint64 `json:"block_time"`
}

// Transaction is a transaction as returned by the explorer `/tx/{txid}` endpoint.
// Only coinbase transactions are fetched by the pipeline.
type Transaction struct {
	TxID     string     `json:"txid"`
	Version  uint32     `json:"version"`
	LockTime uint32     `json:"locktime"`
	Vin      []TxInput  `json:"vin"`
	Vout     []TxOutput `json:"vout"`
	Size     uint32     `json:"size"`
	Weight   uint32     `json:"weight"`
	Status   TxStatus   `json:"status"`
}

// IsCoinbase reports whether the first input is marked coinbase.
func (t Transaction) IsCoinbase() bool {
	return len(t.Vin) > 0 && t.Vin[0].IsCoinbase
}

// CoinbaseScriptSig returns the hex scriptSig of the first input.
func (t Transaction) CoinbaseScriptSig() (string, bool) {
	if len(t.Vin) == 0 {
		return "", false
	}
	return t.Vin[0].ScriptSig, true
}

// MainRewardOutput returns the largest non-zero output, the presumed miner payout.
// Zero-value outputs (OP_RETURN commitments) are never selected. Ties keep the last one.
func (t Transaction) MainRewardOutput() (TxOutput, bool) {
	var (
		best  TxOutput
		found bool
	)
	for _, out := range t.Vout {
		if out.Value == 0 {
			continue
		}
		if !found || out.Value >= best.Value {
			best = out
			found = true
		}
	}
	return best, found
}

// MainRewardValue returns the value of MainRewardOutput, if any.
func (t Transaction) MainRewardValue() *uint64 {
	out, ok := t.MainRewardOutput()
	if !ok {
		return nil
	}
	v := out.Value
	return &v
}

// MainRewardAddress returns the address of MainRewardOutput, if it has one.
func (t Transaction) MainRewardAddress() *string {
	out, ok := t.MainRewardOutput()
	if !ok || out.ScriptPubKeyAddress == nil {
		return nil
	}
	addr := *out.ScriptPubKeyAddress
	return &addr
}

// FullRewardValue sums all outputs.
func (t Transaction) FullRewardValue() uint64 {
	var total uint64
	for _, out := range t.Vout {
		total += out.Value
	}
	return total
}

// RewardShares lists every non-zero output that pays an address.
func (t Transaction) RewardShares() []RewardShare {
	shares := make([]RewardShare, 0, len(t.Vout))
	for _, out := range t.Vout {
		if out.Value == 0 || out.ScriptPubKeyAddress == nil {
			continue
		}
		shares = append(shares, RewardShare{Value: out.Value, Address: *out.ScriptPubKeyAddress})
	}
	return shares
}
