package db

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"fmt"
)

func nullStr(s string) any {
	if s == "" || s == "null" {
		return nil
	}
	return s
}

func nullBytes(b []byte) any {
	if b == nil {
		return nil
	}
	return b
}

// hashData renders the MD5 of data as 32 lowercase hex characters.
func hashData(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

func requireAffected(res sql.Result, table, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s %s: %w", table, key, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s not found", table, key)
	}
	return nil
}
