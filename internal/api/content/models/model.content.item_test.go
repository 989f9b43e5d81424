// Package models - Test thứ tự fallback của text dùng để đăng bài.
package models

import "testing"

func TestPublishText_FallbackOrder(t *testing.T) {
	cases := []struct {
		name string
		item ContentItem
		want string
	}{
		{"ưu tiên copy_texto", ContentItem{CopyTexto: "copy", Contenido: "raw", Titulo: "title"}, "copy"},
		{"fallback contenido", ContentItem{Contenido: "raw", Titulo: "title"}, "raw"},
		{"fallback cuối titulo", ContentItem{Titulo: "title"}, "title"},
		{"tất cả rỗng", ContentItem{}, ""},
	}
	for _, tc := range cases {
		if got := tc.item.PublishText(); got != tc.want {
			t.Errorf("%s: PublishText() = %q, muốn %q", tc.name, got, tc.want)
		}
	}
}
