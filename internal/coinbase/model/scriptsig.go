package model

// ParsedScriptSig holds the fields recovered from a coinbase scriptSig.
// GuessedMiner is advisory free text, never validated.
type ParsedScriptSig struct {
	BlockHeight  uint32
	GuessedMiner string
	TimestampSec *uint64
	ExtraNonce   []byte
	CoinbaseRaw  []byte
	RawPushes    [][]byte
}
