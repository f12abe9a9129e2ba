package fixtures

// Vector is a message with its known MD5 hex digest.
type Vector struct {
	Message string
	Hex     string
}

// RFC 1321 appendix A.5 plus the "123" vector.
var Vectors = []Vector{
	{"", "d41d8cd98f00b204e9800998ecf8427e"},
	{"a", "0cc175b9c0f1b6a831c399e269772661"},
	{"abc", "900150983cd24fb0d6963f7d28e17f72"},
	{"123", "202cb962ac59075b964b07152d234b70"},
	{"message digest", "f96b697d7cb7938d525a2f31aaf161d0"},
	{"abcdefghijklmnopqrstuvwxyz", "c3fcd3d76192e4007dfb496cca67e13b"},
	{"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789", "d174ab98d277d9f5a5611c2c9f419d9f"},
	{"12345678901234567890123456789012345678901234567890123456789012345678901234567890", "57edf4a22be3c955ac49da2e2107b67a"},
}

// Mining is a seed with the number of increments needed to reach a digest
// with Zeroes leading zero hex digits.
type Mining struct {
	Seed   string
	Zeroes int
	Steps  int
	Key    string
}

var Mined = []Mining{
	{Seed: "abcdef", Zeroes: 5, Steps: 609043, Key: "abcdef609043"},
	{Seed: "pqrstuv", Zeroes: 5, Steps: 1048970, Key: "pqrstuv1048970"},
}

// DoorID is the sample door identifier with its two passwords.
const (
	DoorID             = "abc"
	DoorPassword       = "18f47a30"
	PositionalPassword = "05ace8e3"
)

// Salt is the sample one-time-pad salt with the index of the 64th key, plain
// and stretched with 2016 extra rounds.
const (
	Salt              = "abc"
	SaltKeyIndex      = 22728
	SaltFirstKeyIndex = 39
	StretchedRounds   = 2016
	StretchedKeyIndex = 22551
)
