package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcatalog/internal/domain"
)

func TestTemplateRenderer_Render(t *testing.T) {
	tests := []struct {
		name        string
		template    string
		data        domain.EventNoticeEmailData
		wantSubject string
		wantInBody  []string
		notInText   []string
	}{
		{
			name:        "published",
			template:    domain.TemplateEventPublished,
			data:        domain.EventNoticeEmailData{EventID: "ev-1", EventName: "Konferencja IT", OrganizerID: "org-1"},
			wantSubject: "Published: Konferencja IT",
			wantInBody:  []string{"Konferencja IT", "ev-1", "org-1"},
		},
		{
			name:        "cancelled with reason",
			template:    domain.TemplateEventCancelled,
			data:        domain.EventNoticeEmailData{EventID: "ev-1", EventName: "Meetup", OrganizerID: "org-1", Reason: "venue closed"},
			wantSubject: "Cancelled: Meetup",
			wantInBody:  []string{"Meetup", "Reason: venue closed"},
		},
		{
			name:        "cancelled without reason",
			template:    domain.TemplateEventCancelled,
			data:        domain.EventNoticeEmailData{EventID: "ev-1", EventName: "Meetup", OrganizerID: "org-1"},
			wantSubject: "Cancelled: Meetup",
			wantInBody:  []string{"Meetup"},
			notInText:   []string{"Reason:"},
		},
	}

	r := NewTemplateRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, html, text, err := r.Render(tt.template, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, subject)
			for _, s := range tt.wantInBody {
				assert.Contains(t, html, s)
				assert.Contains(t, text, s)
			}
			for _, s := range tt.notInText {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestTemplateRenderer_EscapesHTML(t *testing.T) {
	_, html, text, err := NewTemplateRenderer().Render(domain.TemplateEventPublished,
		domain.EventNoticeEmailData{EventName: "<b>Go</b>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>Go</b>")
	assert.Contains(t, html, "&lt;b&gt;Go&lt;/b&gt;")
	assert.Contains(t, text, "<b>Go</b>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	_, _, _, err := NewTemplateRenderer().Render("missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render subject")
}
