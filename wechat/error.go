package wechat

import "fmt"

// Error is an explicit failure reported in an API response body
type Error struct {
	Code int    `json:"errcode"`
	Msg  string `json:"errmsg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("wechat error %d: %s", e.Code, e.Msg)
}
