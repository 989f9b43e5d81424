// Package publicationsvc - Test rule quyết định của reconciler:
// chỉ content programado với fecha_publicacion ở tương lai mới được lên lịch.
package publicationsvc

import (
	"testing"
	"time"

	contentmodels "pullnova_marketing/internal/api/content/models"
)

func TestShouldSchedule_Programado(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour).UnixMilli()

	content := &contentmodels.ContentItem{
		Estado:           contentmodels.ContentEstadoProgramado,
		FechaPublicacion: &future,
	}
	ok, reason := shouldSchedule(content, now)
	if !ok {
		t.Fatalf("content programado với ngày tương lai phải schedulable, reason: %s", reason)
	}
}

func TestShouldSchedule_NonProgramadoEstados(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour).UnixMilli()

	for _, estado := range []string{
		contentmodels.ContentEstadoBorrador,
		contentmodels.ContentEstadoAprobado,
		contentmodels.ContentEstadoPublicado,
	} {
		content := &contentmodels.ContentItem{Estado: estado, FechaPublicacion: &future}
		ok, reason := shouldSchedule(content, now)
		if ok {
			t.Errorf("estado %s không được schedulable", estado)
		}
		// Không phải programado thì không có lý do warning
		if reason != "" {
			t.Errorf("estado %s không được có reason, nhận: %s", estado, reason)
		}
	}
}

func TestShouldSchedule_MissingDate(t *testing.T) {
	content := &contentmodels.ContentItem{Estado: contentmodels.ContentEstadoProgramado}
	ok, reason := shouldSchedule(content, time.Now())
	if ok {
		t.Fatal("content programado thiếu fecha_publicacion không được schedulable")
	}
	if reason != reconcileReasonNoDate {
		t.Errorf("reason phải là %q, nhận %q", reconcileReasonNoDate, reason)
	}
}

func TestShouldSchedule_PastDate(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute).UnixMilli()

	content := &contentmodels.ContentItem{
		Estado:           contentmodels.ContentEstadoProgramado,
		FechaPublicacion: &past,
	}
	ok, reason := shouldSchedule(content, now)
	if ok {
		t.Fatal("content programado với ngày quá khứ không được schedulable")
	}
	if reason != reconcileReasonPastDate {
		t.Errorf("reason phải là %q, nhận %q", reconcileReasonPastDate, reason)
	}
}

func TestShouldSchedule_ExactNowIsPast(t *testing.T) {
	now := time.Now()
	exact := now.UnixMilli()

	content := &contentmodels.ContentItem{
		Estado:           contentmodels.ContentEstadoProgramado,
		FechaPublicacion: &exact,
	}
	if ok, _ := shouldSchedule(content, now); ok {
		t.Fatal("fecha_publicacion bằng đúng now phải bị coi là quá khứ")
	}
}
