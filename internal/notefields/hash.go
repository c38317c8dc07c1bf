package notefields

import (
	"strings"

	"github.com/chris/notefields/internal/logger"
	"go.uber.org/zap"
)

// HashLength is the width of a hex-rendered MD5 resource hash.
const HashLength = 32

// PadHash left-pads hash with '0' to HashLength. Hashes that are already
// HashLength or longer come back unchanged.
func PadHash(hash string) string {
	if len(hash) >= HashLength {
		return hash
	}
	return strings.Repeat("0", HashLength-len(hash)) + hash
}

// padded is PadHash plus a warning whenever a stored hash had lost its
// leading zeros.
func (s *Statements) padded(hash string) string {
	p := PadHash(hash)
	if p != hash {
		s.log.Warn("padding hash",
			zap.String(logger.FieldHash, p),
			zap.Int(logger.FieldLength, len(p)))
	}
	return p
}
