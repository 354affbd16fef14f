package txhash

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Size is the byte length of a transaction reference, 66 characters once 0x-encoded.
const Size = 32

var demo = func() string {
	b := make([]byte, Size)
	for i := range b {
		b[i] = byte(i % 256)
	}
	return hexutil.Encode(b)
}()

// Demo returns the transaction reference stamped on every burn record. Burns never reach
// a chain, so the value is a fixed byte pattern and carries no information about the record.
func Demo() string {
	return demo
}
