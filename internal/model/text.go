package model

import "go-ctp/internal/gbk"

// Text decodes a fixed GB18030 field up to its first NUL.
func Text(b []byte) string {
	return gbk.Decode(b)
}

// SetText stores s into a fixed field, truncating at a character boundary.
// Characters GB18030 cannot represent are dropped from the tail.
func SetText(dst []byte, s string) {
	_, _ = gbk.Put(dst, s)
}

// Message returns the decoded error message, or "" for a nil record.
func (r *RspInfoField) Message() string {
	if r == nil {
		return ""
	}
	return Text(r.ErrorMsg[:])
}
