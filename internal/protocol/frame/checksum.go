package frame

import "github.com/sigurn/crc8"

// dvbs2 is the CRC8/DVB-S2 table: poly 0xD5, init 0x00, no reflection,
// xorout 0x00. Built once; Checksum over it matches the bitwise definition
// used by MSP v2 firmware.
var dvbs2 = crc8.MakeTable(crc8.CRC8_DVB_S2)

// CrcV2 computes the v2 frame CRC over the given byte range.
func CrcV2(data []byte) byte {
	return crc8.Checksum(data, dvbs2)
}

// ChecksumV1 computes the v1 running XOR over the given byte range.
// Callers pass the length byte, the code byte, and the payload in order.
func ChecksumV1(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum ^= b
	}
	return sum
}
