package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagList_UnmarshalJSON(t *testing.T) {
	var req CreateArticleRequest

	require.NoError(t, json.Unmarshal([]byte(`{"tags":["go","blog"]}`), &req))
	assert.Equal(t, TagList{"go", "blog"}, req.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"tags":"Ansible, Infrastructure, Linux"}`), &req))
	assert.Equal(t, []string{"Ansible", "Infrastructure", "Linux"}, NormalizeTags(req.Tags))

	assert.Error(t, json.Unmarshal([]byte(`{"tags":42}`), &req))
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" Go ", "", "go", "Linux", "  ", "GitHub Actions", "linux"})
	assert.Equal(t, []string{"Go", "Linux", "GitHub Actions"}, got)
	assert.Equal(t, []string{}, NormalizeTags(nil))
}

func TestUpdateArticleRequest_Empty(t *testing.T) {
	assert.True(t, UpdateArticleRequest{}.Empty())

	desc := "new"
	assert.False(t, UpdateArticleRequest{Description: &desc}.Empty())
}
