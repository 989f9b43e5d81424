// Package models - Test máy trạng thái publication: chỉ đi tiến,
// sent/cancelled là terminal, failed chỉ quay về pending.
package models

import "testing"

func TestCanTransition_PendingForwardOnly(t *testing.T) {
	for _, to := range []string{PublicationStateSent, PublicationStateFailed, PublicationStateCancelled} {
		if !CanTransition(PublicationStatePending, to) {
			t.Errorf("pending -> %s phải hợp lệ", to)
		}
	}
	if CanTransition(PublicationStatePending, PublicationStatePending) {
		t.Error("pending -> pending không được hợp lệ")
	}
}

func TestCanTransition_FailedOnlyBackToPending(t *testing.T) {
	if !CanTransition(PublicationStateFailed, PublicationStatePending) {
		t.Error("failed -> pending (reprogram) phải hợp lệ")
	}
	for _, to := range []string{PublicationStateSent, PublicationStateCancelled, PublicationStateFailed} {
		if CanTransition(PublicationStateFailed, to) {
			t.Errorf("failed -> %s không được hợp lệ", to)
		}
	}
}

func TestCanTransition_TerminalStates(t *testing.T) {
	for _, from := range []string{PublicationStateSent, PublicationStateCancelled} {
		for _, to := range []string{PublicationStatePending, PublicationStateSent, PublicationStateFailed, PublicationStateCancelled} {
			if CanTransition(from, to) {
				t.Errorf("%s là terminal, %s -> %s không được hợp lệ", from, from, to)
			}
		}
	}
}

func TestCanTransition_UnknownState(t *testing.T) {
	if CanTransition("draft", PublicationStateSent) {
		t.Error("trạng thái không xác định không được chuyển đi đâu")
	}
}
