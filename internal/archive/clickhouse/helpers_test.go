package clickhouse

import (
	"errors"
	"fmt"

	"github.com/golang/mock/gomock"
)

var (
	errPrepare = errors.New("prepare failed")
	errAppend  = errors.New("append failed")
	errSend    = errors.New("send failed")
	errQuery   = errors.New("query failed")
)

type errorIsMatcher struct {
	target error
}

func errorIs(target error) gomock.Matcher {
	return errorIsMatcher{target: target}
}

func (m errorIsMatcher) Matches(x interface{}) bool {
	err, ok := x.(error)
	return ok && errors.Is(err, m.target)
}

func (m errorIsMatcher) String() string {
	return fmt.Sprintf("is error %v", m.target)
}
