package template_test

import (
	"strings"
	"testing"

	"github.com/gyeongjo/reminderhub/internal/domain"
	"github.com/gyeongjo/reminderhub/internal/template"
)

func TestResolve_KnownCategories(t *testing.T) {
	tests := []struct {
		category   domain.Category
		wantTitle  string
		bodySubstr string
	}{
		{domain.CategoryWedding, "Wedding reminder · 3 days before", "congratulatory gift"},
		{domain.CategoryFuneral, "Funeral reminder · 3 days before", "respects"},
		{domain.CategoryBirthday, "Birthday reminder · 3 days before", "gift"},
	}

	for _, tc := range tests {
		t.Run(string(tc.category), func(t *testing.T) {
			msg := template.Resolve(tc.category, "3 days before", "Jimin & Sora")
			if msg.Title != tc.wantTitle {
				t.Errorf("expected title %q, got %q", tc.wantTitle, msg.Title)
			}
			if !strings.Contains(msg.Body, "Jimin & Sora") {
				t.Errorf("expected body to contain the event title, got %q", msg.Body)
			}
			if !strings.Contains(strings.ToLower(msg.Body), tc.bodySubstr) {
				t.Errorf("expected body to mention %q, got %q", tc.bodySubstr, msg.Body)
			}
		})
	}
}

func TestResolve_UnknownCategoryFallsBack(t *testing.T) {
	msg := template.Resolve(domain.Category("quinceanera"), "1 days before", "Lucia's Party")
	generic := template.Resolve(domain.CategoryOther, "1 days before", "Lucia's Party")

	if msg != generic {
		t.Fatalf("expected unknown category to resolve like %q, got %+v", domain.CategoryOther, msg)
	}
	if msg.Title == "" || msg.Body == "" {
		t.Fatal("fallback message must not be empty")
	}
}
