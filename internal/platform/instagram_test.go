// Package platform - Test lifecycle container ba pha của adapter Instagram:
// tạo container, poll đến FINISHED/ERROR/timeout, media_publish.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestInstagramAdapter(baseURL string, maxAttempts int) *InstagramAdapter {
	return NewInstagramAdapter(baseURL, maxAttempts, time.Millisecond)
}

func TestInstagramPublish_RequiresImage(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	adapter := newTestInstagramAdapter(server.URL, 3)
	result := adapter.Publish(context.Background(), testAccount("instagram"), PublishPayload{Text: "solo texto"})

	if result.Success {
		t.Fatal("publish không ảnh phải fail ngay")
	}
	if result.Error != "requires image" {
		t.Errorf("error phải là \"requires image\", nhận %q", result.Error)
	}
	if called {
		t.Error("không được gọi platform khi payload không có ảnh")
	}
}

func TestInstagramPublish_SingleImageHappyPath(t *testing.T) {
	var publishCalled bool
	var pollCount int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/page123/media":
			body := readBody(t, r)
			if body["image_url"] != "https://img.example/a.jpg" || body["caption"] != "caption" {
				t.Errorf("container payload sai: %v", body)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "container_1"})
		case r.URL.Path == "/container_1":
			pollCount++
			status := "IN_PROGRESS"
			if pollCount >= 2 {
				status = "FINISHED"
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"status_code": status})
		case r.URL.Path == "/page123/media_publish":
			if pollCount < 2 {
				t.Error("media_publish bị gọi trước khi container FINISHED")
			}
			publishCalled = true
			body := readBody(t, r)
			if body["creation_id"] != "container_1" {
				t.Errorf("media_publish phải dùng creation_id của container, nhận %v", body["creation_id"])
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "ig_post_1"})
		default:
			t.Errorf("endpoint không mong đợi: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	adapter := newTestInstagramAdapter(server.URL, 5)
	result := adapter.Publish(context.Background(), testAccount("instagram"), PublishPayload{
		Text:      "caption",
		ImageURLs: []string{"https://img.example/a.jpg"},
	})

	if !result.Success {
		t.Fatalf("publish phải thành công, error: %s", result.Error)
	}
	if result.ExternalPostID != "ig_post_1" {
		t.Errorf("externalPostId phải là ig_post_1, nhận %q", result.ExternalPostID)
	}
	if !publishCalled {
		t.Error("media_publish phải được gọi sau FINISHED")
	}
}

func TestInstagramPublish_CarouselCreatesChildrenThenParent(t *testing.T) {
	var containerCalls []map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/page123/media":
			body := readBody(t, r)
			containerCalls = append(containerCalls, body)
			json.NewEncoder(w).Encode(map[string]interface{}{"id": fmt.Sprintf("c_%d", len(containerCalls))})
		case strings.HasPrefix(r.URL.Path, "/c_"):
			json.NewEncoder(w).Encode(map[string]interface{}{"status_code": "FINISHED"})
		case r.URL.Path == "/page123/media_publish":
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "ig_carousel_post"})
		}
	}))
	defer server.Close()

	adapter := newTestInstagramAdapter(server.URL, 3)
	result := adapter.Publish(context.Background(), testAccount("instagram"), PublishPayload{
		Text:      "carousel caption",
		ImageURLs: []string{"https://img.example/a.jpg", "https://img.example/b.jpg"},
	})

	if !result.Success {
		t.Fatalf("publish carousel phải thành công, error: %s", result.Error)
	}
	if len(containerCalls) != 3 {
		t.Fatalf("phải có 3 lần tạo container (2 item + 1 parent), nhận %d", len(containerCalls))
	}
	for _, child := range containerCalls[:2] {
		if child["is_carousel_item"] != true {
			t.Errorf("container con phải có is_carousel_item=true, nhận %v", child)
		}
	}
	parent := containerCalls[2]
	if parent["media_type"] != "CAROUSEL" {
		t.Errorf("container cha phải có media_type=CAROUSEL, nhận %v", parent)
	}
	if parent["children"] != "c_1,c_2" {
		t.Errorf("container cha phải tham chiếu các item id, nhận %v", parent["children"])
	}
	if parent["caption"] != "carousel caption" {
		t.Errorf("caption phải nằm ở container cha, nhận %v", parent["caption"])
	}
}

func TestInstagramPublish_ContainerErrorNeverRepolled(t *testing.T) {
	var pollCount, publishCount int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/page123/media":
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "container_err"})
		case r.URL.Path == "/container_err":
			pollCount++
			json.NewEncoder(w).Encode(map[string]interface{}{"status_code": "ERROR", "status": "Media upload failed"})
		case r.URL.Path == "/page123/media_publish":
			publishCount++
		}
	}))
	defer server.Close()

	adapter := newTestInstagramAdapter(server.URL, 10)
	result := adapter.Publish(context.Background(), testAccount("instagram"), PublishPayload{
		Text:      "caption",
		ImageURLs: []string{"https://img.example/a.jpg"},
	})

	if result.Success {
		t.Fatal("container ERROR phải là hard failure")
	}
	if pollCount != 1 {
		t.Errorf("container ERROR không được poll lại, nhận %d lần poll", pollCount)
	}
	if publishCount != 0 {
		t.Errorf("media_publish không được gọi sau ERROR, nhận %d lần", publishCount)
	}
	if result.Error != "Media upload failed" {
		t.Errorf("error phải mang status của container, nhận %q", result.Error)
	}
}

func TestInstagramPublish_PollBudgetExhausted(t *testing.T) {
	var pollCount, publishCount int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/page123/media":
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "container_slow"})
		case r.URL.Path == "/container_slow":
			pollCount++
			json.NewEncoder(w).Encode(map[string]interface{}{"status_code": "IN_PROGRESS"})
		case r.URL.Path == "/page123/media_publish":
			publishCount++
		}
	}))
	defer server.Close()

	adapter := newTestInstagramAdapter(server.URL, 3)
	result := adapter.Publish(context.Background(), testAccount("instagram"), PublishPayload{
		Text:      "caption",
		ImageURLs: []string{"https://img.example/a.jpg"},
	})

	if result.Success {
		t.Fatal("hết budget poll phải là timeout failure")
	}
	if pollCount != 3 {
		t.Errorf("số lần poll phải đúng bằng budget (3), nhận %d", pollCount)
	}
	if publishCount != 0 {
		t.Errorf("media_publish không được gọi khi chưa FINISHED, nhận %d lần", publishCount)
	}
}

func TestInstagramFetchEngagement(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"name": "likes", "values": []map[string]interface{}{{"value": 15}}},
				{"name": "comments", "values": []map[string]interface{}{{"value": 4}}},
				{"name": "shares", "values": []map[string]interface{}{{"value": 1}}},
				{"name": "saved", "values": []map[string]interface{}{{"value": 8}}},
				{"name": "impressions", "values": []map[string]interface{}{{"value": 900}}},
				{"name": "reach", "values": []map[string]interface{}{{"value": 650}}},
			},
		})
	}))
	defer server.Close()

	adapter := newTestInstagramAdapter(server.URL, 3)
	data, err := adapter.FetchEngagement(context.Background(), testAccount("instagram"), "ig_post_1")
	if err != nil {
		t.Fatalf("FetchEngagement trả về lỗi: %v", err)
	}

	if data.Likes != 15 || data.Comments != 4 || data.Shares != 1 || data.Saves != 8 {
		t.Errorf("tương tác sai: %+v", data)
	}
	if data.Impressions != 900 || data.Reach != 650 {
		t.Errorf("impressions/reach sai: %+v", data)
	}
	if data.Clicks != 0 {
		t.Errorf("instagram không có clicks, phải là 0, nhận %d", data.Clicks)
	}
}
