package mocks_test

import (
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/ganto23/limitbook-engine/matching"
	"github.com/ganto23/limitbook-engine/mocks"
)

func TestMockHandlerReceivesEngineEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := mocks.NewMockHandler(ctrl)
	h.EXPECT().OnTrade(gomock.Any()).Times(1)
	h.EXPECT().OnBookChange().MinTimes(1)

	e := matching.NewEngine(matching.WithBookChangeInterval(time.Millisecond))
	e.SetHandler(h)

	if _, err := e.Submit(100, 5, matching.OrderSideBuy); err != nil {
		t.Fatal(err)
	}
	if _, err := e.Submit(100, 5, matching.OrderSideSell); err != nil {
		t.Fatal(err)
	}

	// Let any coalesced book-change timer fire before the controller is
	// checked, so the mock never receives a call after the test returns.
	time.Sleep(5 * time.Millisecond)
}
