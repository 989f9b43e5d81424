// Package platform - Test adapter LinkedIn: UGC post text-only,
// post id nằm trong response header X-RestLi-Id.
package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLinkedInPublish_PostIDFromHeader(t *testing.T) {
	var gotBody map[string]interface{}
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/ugcPosts" {
			t.Errorf("endpoint phải là /v2/ugcPosts, nhận %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotBody = readBody(t, r)

		// LinkedIn trả post id qua header, body không chứa id
		w.Header().Set("X-RestLi-Id", "urn:li:share:6789")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer server.Close()

	adapter := NewLinkedInAdapter(server.URL)
	account := testAccount("linkedin")
	account.ExternalPageId = "person456"

	result := adapter.Publish(context.Background(), account, PublishPayload{Text: "professional update"})

	if !result.Success {
		t.Fatalf("publish phải thành công, error: %s", result.Error)
	}
	if result.ExternalPostID != "urn:li:share:6789" {
		t.Errorf("post id phải lấy từ header X-RestLi-Id, nhận %q", result.ExternalPostID)
	}
	if gotAuth != "Bearer token-abc" {
		t.Errorf("Authorization header sai: %q", gotAuth)
	}
	if gotBody["author"] != "urn:li:person:person456" {
		t.Errorf("author phải là urn:li:person:<id>, nhận %v", gotBody["author"])
	}

	content, _ := gotBody["specificContent"].(map[string]interface{})
	share, _ := content["com.linkedin.ugc.ShareContent"].(map[string]interface{})
	commentary, _ := share["shareCommentary"].(map[string]interface{})
	if commentary["text"] != "professional update" {
		t.Errorf("shareCommentary.text sai: %v", commentary)
	}
	if share["shareMediaCategory"] != "NONE" {
		t.Errorf("shareMediaCategory phải là NONE, nhận %v", share["shareMediaCategory"])
	}
}

func TestLinkedInPublish_MissingHeaderIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Không set X-RestLi-Id
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "id_trong_body_khong_duoc_dung"})
	}))
	defer server.Close()

	adapter := NewLinkedInAdapter(server.URL)
	result := adapter.Publish(context.Background(), testAccount("linkedin"), PublishPayload{Text: "hello"})

	if result.Success {
		t.Fatal("thiếu header X-RestLi-Id phải là failure, id trong body không được dùng")
	}
}

func TestLinkedInPublish_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"message": "Invalid access token", "status": 401})
	}))
	defer server.Close()

	adapter := NewLinkedInAdapter(server.URL)
	result := adapter.Publish(context.Background(), testAccount("linkedin"), PublishPayload{Text: "hello"})

	if result.Success {
		t.Fatal("status 401 phải là failure")
	}
	if result.Error != "Invalid access token" {
		t.Errorf("error phải mang message của platform, nhận %q", result.Error)
	}
	if result.Platform != "linkedin" {
		t.Errorf("platform phải là linkedin, nhận %q", result.Platform)
	}
}

func TestLinkedInFetchEngagement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/socialActions/urn:li:share:6789" {
			t.Errorf("endpoint socialActions sai: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"likesSummary":    map[string]interface{}{"totalLikes": 12},
			"commentsSummary": map[string]interface{}{"aggregatedTotalComments": 3},
		})
	}))
	defer server.Close()

	adapter := NewLinkedInAdapter(server.URL)
	data, err := adapter.FetchEngagement(context.Background(), testAccount("linkedin"), "urn:li:share:6789")
	if err != nil {
		t.Fatalf("FetchEngagement trả về lỗi: %v", err)
	}

	if data.Likes != 12 || data.Comments != 3 {
		t.Errorf("likes/comments sai: %+v", data)
	}
	if data.Shares != 0 || data.Saves != 0 || data.Impressions != 0 || data.Reach != 0 || data.Clicks != 0 {
		t.Errorf("các metric không có trên linkedin phải là 0: %+v", data)
	}
}
