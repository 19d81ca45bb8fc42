package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannelURL(t *testing.T) {
	cases := []struct {
		url  string
		want ChannelRef
	}{
		{"https://www.youtube.com/channel/UC123abc", ChannelRef{ID: "UC123abc"}},
		{"https://youtube.com/@gopher/videos", ChannelRef{Handle: "gopher"}},
		{"https://m.youtube.com/c/GoTalks", ChannelRef{Handle: "GoTalks"}},
		{" https://www.youtube.com/user/oldname ", ChannelRef{Handle: "oldname"}},
	}
	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			ref, err := ParseChannelURL(tc.url)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ref)
		})
	}

	for _, bad := range []string{"", "not a url", "https://vimeo.com/channel/x", "https://www.youtube.com/watch?v=abc", "https://www.youtube.com/@"} {
		_, err := ParseChannelURL(bad)
		assert.ErrorIs(t, err, ErrInvalidChannelURL, bad)
	}
}

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 0.0, EngagementRate(0, 10, 10))
	assert.Equal(t, 5.0, EngagementRate(1000, 40, 10))
	assert.Equal(t, 33.33, EngagementRate(3, 1, 0))
}

func TestUploadFrequency(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	every := func(days float64, n int) []time.Time {
		out := make([]time.Time, n)
		for i := range out {
			out[i] = base.Add(-time.Duration(float64(i)*days*24) * time.Hour)
		}
		return out
	}

	assert.Nil(t, UploadFrequency(nil))
	assert.Nil(t, UploadFrequency([]time.Time{base, {}}))

	assert.Equal(t, "Daily", *UploadFrequency(every(1, 5)))
	assert.Equal(t, "3 videos/week", *UploadFrequency(every(2, 5)))
	assert.Equal(t, "Weekly", *UploadFrequency(every(7, 4)))
	assert.Equal(t, "Bi-weekly", *UploadFrequency(every(14, 3)))
	assert.Equal(t, "Every 30 days", *UploadFrequency(every(30, 3)))
}
