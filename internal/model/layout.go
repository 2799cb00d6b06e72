package model

import "unsafe"

// Layout sizes of the records most often crossed over the C boundary.

func RspInfoSize() uintptr         { return unsafe.Sizeof(RspInfoField{}) }
func ReqUserLoginSize() uintptr    { return unsafe.Sizeof(ReqUserLoginField{}) }
func RspUserLoginSize() uintptr    { return unsafe.Sizeof(RspUserLoginField{}) }
func DepthMarketDataSize() uintptr { return unsafe.Sizeof(DepthMarketDataField{}) }
func InputOrderSize() uintptr      { return unsafe.Sizeof(InputOrderField{}) }
func OrderSize() uintptr           { return unsafe.Sizeof(OrderField{}) }
func TradeSize() uintptr           { return unsafe.Sizeof(TradeField{}) }
func UserSystemInfoSize() uintptr  { return unsafe.Sizeof(UserSystemInfoField{}) }
