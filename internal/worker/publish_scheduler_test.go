package worker

import (
	"testing"
	"time"

	accountmodels "pullnova_marketing/internal/api/account/models"
)

func gateAccount(state string, tokenExpiresAt *int64) *accountmodels.ConnectedAccount {
	return &accountmodels.ConnectedAccount{
		Platform:       accountmodels.PlatformFacebook,
		ExternalPageId: "page123",
		AccessToken:    "token-abc",
		TokenExpiresAt: tokenExpiresAt,
		State:          state,
	}
}

func TestClassifyAccountAtPublish(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour).UnixMilli()
	future := now.Add(time.Hour).UnixMilli()

	tests := []struct {
		name    string
		account *accountmodels.ConnectedAccount
		want    accountGate
	}{
		{
			name:    "connected không có hạn token thì đăng",
			account: gateAccount(accountmodels.AccountStateConnected, nil),
			want:    gatePublish,
		},
		{
			name:    "connected với token còn hạn thì đăng",
			account: gateAccount(accountmodels.AccountStateConnected, &future),
			want:    gatePublish,
		},
		{
			name:    "connected nhưng token đã quá hạn thì phải expire và fail, không skip",
			account: gateAccount(accountmodels.AccountStateConnected, &past),
			want:    gateTokenExpired,
		},
		{
			name:    "disconnected thì để pending chờ kết nối lại",
			account: gateAccount(accountmodels.AccountStateDisconnected, nil),
			want:    gateWaitReconnect,
		},
		{
			name:    "đã expired thì để pending chờ cập nhật token",
			account: gateAccount(accountmodels.AccountStateExpired, &past),
			want:    gateWaitReconnect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyAccountAtPublish(tt.account, now); got != tt.want {
				t.Errorf("classifyAccountAtPublish() = %v, muốn %v", got, tt.want)
			}
		})
	}
}
