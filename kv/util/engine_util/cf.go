package engine_util

// Column families. Transactional data lives in default/lock/write, raw mode data in raw and
// store local metadata (region directory) in meta.
const (
	CfDefault string = "default"
	CfWrite   string = "write"
	CfLock    string = "lock"
	CfRaw     string = "raw"
	CfMeta    string = "meta"
)

var CFs = [5]string{CfDefault, CfWrite, CfLock, CfRaw, CfMeta}

func IsValidCF(cf string) bool {
	for _, c := range CFs {
		if c == cf {
			return true
		}
	}
	return false
}

// KeyWithCF prefixes key with its column family, badger has no native column families.
func KeyWithCF(cf string, key []byte) []byte {
	b := make([]byte, 0, len(cf)+1+len(key))
	b = append(b, cf...)
	b = append(b, '_')
	return append(b, key...)
}
