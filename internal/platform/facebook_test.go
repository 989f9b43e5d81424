// Package platform - Test adapter Facebook với Graph API giả lập qua httptest.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	accountmodels "pullnova_marketing/internal/api/account/models"
)

func testAccount(platform string) *accountmodels.ConnectedAccount {
	return &accountmodels.ConnectedAccount{
		Platform:       platform,
		ExternalPageId: "page123",
		AccessToken:    "token-abc",
		State:          accountmodels.AccountStateConnected,
	}
}

func readBody(t *testing.T, r *http.Request) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("không decode được request body: %v", err)
	}
	return body
}

func TestFacebookPublish_TextOnlyUsesFeed(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = readBody(t, r)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "post_1"})
	}))
	defer server.Close()

	adapter := NewFacebookAdapter(server.URL)
	result := adapter.Publish(context.Background(), testAccount("facebook"), PublishPayload{Text: "hola"})

	if !result.Success {
		t.Fatalf("publish phải thành công, error: %s", result.Error)
	}
	if result.ExternalPostID != "post_1" {
		t.Errorf("externalPostId phải là post_1, nhận %q", result.ExternalPostID)
	}
	if gotPath != "/page123/feed" {
		t.Errorf("text-only phải đi qua feed endpoint, nhận %q", gotPath)
	}
	if gotBody["message"] != "hola" {
		t.Errorf("feed payload phải chứa message, nhận %v", gotBody)
	}
}

func TestFacebookPublish_SingleImageUsesPhotos(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody = readBody(t, r)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "photo_1"})
	}))
	defer server.Close()

	adapter := NewFacebookAdapter(server.URL)
	result := adapter.Publish(context.Background(), testAccount("facebook"), PublishPayload{
		Text:      "caption",
		ImageURLs: []string{"https://img.example/a.jpg"},
	})

	if !result.Success {
		t.Fatalf("publish phải thành công, error: %s", result.Error)
	}
	if gotPath != "/page123/photos" {
		t.Errorf("một ảnh phải đi qua photos endpoint, nhận %q", gotPath)
	}
	if gotBody["url"] != "https://img.example/a.jpg" || gotBody["caption"] != "caption" {
		t.Errorf("photos payload sai: %v", gotBody)
	}
}

func TestFacebookPublish_AlbumUploadsUnpublishedThenFeed(t *testing.T) {
	var photoCalls int
	var feedBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page123/photos":
			body := readBody(t, r)
			if body["published"] != false {
				t.Errorf("ảnh album phải upload với published=false, nhận %v", body["published"])
			}
			photoCalls++
			json.NewEncoder(w).Encode(map[string]interface{}{"id": fmt.Sprintf("media_%d", photoCalls)})
		case "/page123/feed":
			feedBody = readBody(t, r)
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "album_post"})
		default:
			t.Errorf("endpoint không mong đợi: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	adapter := NewFacebookAdapter(server.URL)
	result := adapter.Publish(context.Background(), testAccount("facebook"), PublishPayload{
		Text:      "album caption",
		ImageURLs: []string{"https://img.example/a.jpg", "https://img.example/b.jpg"},
	})

	if !result.Success {
		t.Fatalf("publish album phải thành công, error: %s", result.Error)
	}
	if result.ExternalPostID != "album_post" {
		t.Errorf("externalPostId phải là album_post, nhận %q", result.ExternalPostID)
	}
	if photoCalls != 2 {
		t.Errorf("phải upload 2 ảnh unpublished, nhận %d", photoCalls)
	}
	attached, ok := feedBody["attached_media"].([]interface{})
	if !ok || len(attached) != 2 {
		t.Errorf("feed payload phải chứa attached_media với 2 phần tử, nhận %v", feedBody["attached_media"])
	}
}

func TestFacebookPublish_PlatformErrorIsHardFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "Invalid OAuth access token", "code": 190},
		})
	}))
	defer server.Close()

	adapter := NewFacebookAdapter(server.URL)
	result := adapter.Publish(context.Background(), testAccount("facebook"), PublishPayload{Text: "hola"})

	if result.Success {
		t.Fatal("response có field error phải là hard failure")
	}
	if result.Error != "Invalid OAuth access token" {
		t.Errorf("error phải được normalize về message của platform, nhận %q", result.Error)
	}
	if result.Platform != "facebook" {
		t.Errorf("platform trong result phải là facebook, nhận %q", result.Platform)
	}
	if result.Raw == nil {
		t.Error("raw response phải được giữ lại để chẩn đoán")
	}
}

func TestFacebookPublish_MissingToken(t *testing.T) {
	adapter := NewFacebookAdapter("http://unused")
	account := testAccount("facebook")
	account.AccessToken = ""

	result := adapter.Publish(context.Background(), account, PublishPayload{Text: "hola"})
	if result.Success {
		t.Fatal("thiếu access token phải fail ngay, không gọi platform")
	}
}

func TestFacebookFetchEngagement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/post_1/insights" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"data": []map[string]interface{}{
					{"name": "post_impressions", "values": []map[string]interface{}{{"value": 500}}},
					{"name": "post_impressions_unique", "values": []map[string]interface{}{{"value": 300}}},
					{"name": "post_clicks", "values": []map[string]interface{}{{"value": 42}}},
				},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"reactions": map[string]interface{}{"summary": map[string]interface{}{"total_count": 10}},
			"comments":  map[string]interface{}{"summary": map[string]interface{}{"total_count": 5}},
			"shares":    map[string]interface{}{"count": 2},
		})
	}))
	defer server.Close()

	adapter := NewFacebookAdapter(server.URL)
	data, err := adapter.FetchEngagement(context.Background(), testAccount("facebook"), "post_1")
	if err != nil {
		t.Fatalf("FetchEngagement trả về lỗi: %v", err)
	}

	if data.Likes != 10 || data.Comments != 5 || data.Shares != 2 {
		t.Errorf("likes/comments/shares sai: %+v", data)
	}
	if data.Impressions != 500 || data.Reach != 300 || data.Clicks != 42 {
		t.Errorf("impressions/reach/clicks sai: %+v", data)
	}
	if data.Saves != 0 {
		t.Errorf("facebook không có saves, phải là 0, nhận %d", data.Saves)
	}
}
