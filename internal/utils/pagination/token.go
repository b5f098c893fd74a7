package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken creates an opaque base64 token from an entry date and piece
// number, the stable sort key of the list endpoints. Piece numbers are unique
// per restaurant, so the pair never ties across rows.
func EncodeToken(entryDate time.Time, pieceNumber string) string {
	tokenStr := fmt.Sprintf("%s|%s", entryDate.Format(timeFormat), pieceNumber)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a token back into its entry date and piece number.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}

	return entryDate, parts[1], nil
}
