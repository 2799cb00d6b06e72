package model

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestRspInfoOK(t *testing.T) {
	var nilInfo *RspInfoField
	assert.True(t, nilInfo.OK())
	assert.Equal(t, "", nilInfo.Message())

	info := &RspInfoField{}
	assert.True(t, info.OK())

	info.ErrorID = 3
	SetText(info.ErrorMsg[:], "不合法的登录")
	assert.False(t, info.OK())
	assert.Equal(t, "不合法的登录", info.Message())
}

func TestSetTextTruncates(t *testing.T) {
	var id [InstrumentIDLen]byte
	SetText(id[:], "rb2410")
	assert.Equal(t, "rb2410", Text(id[:]))

	var day [DateLen]byte
	SetText(day[:], "2024101812345")
	assert.Equal(t, "20241018", Text(day[:]))
}

func TestLayoutSizes(t *testing.T) {
	assert.Equal(t, uintptr(4+ErrorMsgLen+3), RspInfoSize())
	assert.Equal(t, unsafe.Alignof(float64(0)), unsafe.Alignof(DepthMarketDataField{}))
	assert.Zero(t, DepthMarketDataSize()%8)
}
