package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostStringTruncatesPreview(t *testing.T) {
	p := Post{Text: "Тестовый текст для превью"}
	require.Equal(t, "Тестовый текст ", p.String())

	short := Post{Text: "short"}
	require.Equal(t, "short", short.String())
}

func TestGroupStringIsTitle(t *testing.T) {
	require.Equal(t, "Тестовая группа", Group{Title: "Тестовая группа", Slug: "test_slug"}.String())
}
