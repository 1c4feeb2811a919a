package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/vocabulary-tester/internal/domain/entities"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		record string
		want   *entities.WordEntry
	}{
		{
			name:   "translation",
			record: `{"word": "apple", "translations": [{"translation": "苹果", "type": "n"}, {"translation": "苹果树"}]}`,
			want:   &entities.WordEntry{Word: "apple", Definition: "苹果"},
		},
		{
			name:   "falls back to phrase translation",
			record: `{"word": "run", "phrases": [{"phrase": "run away", "translation": "逃跑"}]}`,
			want: &entities.WordEntry{
				Word:       "run",
				Definition: "逃跑",
				Examples:   []entities.Example{{Phrase: "run away", Translation: "逃跑"}},
			},
		},
		{
			name:   "empty translations falls back to phrases",
			record: `{"word": "go", "translations": [], "phrases": [{"phrase": "go on", "translation": "继续"}]}`,
			want: &entities.WordEntry{
				Word:       "go",
				Definition: "继续",
				Examples:   []entities.Example{{Phrase: "go on", Translation: "继续"}},
			},
		},
		{
			name: "keeps three examples",
			record: `{"word": "take", "translations": [{"translation": "拿"}], "phrases": [
				{"phrase": "a", "translation": "1"}, {"phrase": "b", "translation": "2"},
				{"phrase": "c", "translation": "3"}, {"phrase": "d", "translation": "4"}]}`,
			want: &entities.WordEntry{
				Word:       "take",
				Definition: "拿",
				Examples: []entities.Example{
					{Phrase: "a", Translation: "1"},
					{Phrase: "b", Translation: "2"},
					{Phrase: "c", Translation: "3"},
				},
			},
		},
		{name: "no word", record: `{"translations": [{"translation": "无"}]}`},
		{name: "empty word", record: `{"word": "", "translations": [{"translation": "无"}]}`},
		{name: "no definition", record: `{"word": "ghost"}`},
		{name: "translation is not a list", record: `{"word": "odd", "translations": "奇怪"}`},
		{name: "not an object", record: `"apple"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := normalize([]json.RawMessage{json.RawMessage(tt.record)})
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.Equal(t, *tt.want, got[0])
		})
	}
}

func TestVocabularyRepository_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "1.json", `[
		{"word": "apple", "translations": [{"translation": "苹果"}]},
		{"word": "ghost"},
		42,
		{"word": "run", "phrases": [{"phrase": "run away", "translation": "逃跑"}]}
	]`)

	repo := NewVocabularyRepository(dir, []entities.Module{{ID: "1", Name: "初中", File: "1.json"}}, nil)

	words, err := repo.Load("1")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "apple", words[0].Word)
	assert.Equal(t, "逃跑", words[1].Definition)

	// Served from memory once loaded.
	require.NoError(t, os.Remove(filepath.Join(dir, "1.json")))
	again, err := repo.Load("1")
	require.NoError(t, err)
	assert.Equal(t, words, again)

	n, err := repo.TotalWords("1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestVocabularyRepository_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.json", `[{"word": `)
	writeFile(t, dir, "object.json", `{"word": "apple"}`)

	repo := NewVocabularyRepository(dir, []entities.Module{
		{ID: "missing", File: "nope.json"},
		{ID: "broken", File: "broken.json"},
		{ID: "object", File: "object.json"},
	}, nil)

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "unknown module", id: "42", wantErr: entities.ErrModuleNotFound},
		{name: "missing file", id: "missing", wantErr: entities.ErrLoad},
		{name: "invalid json", id: "broken", wantErr: entities.ErrLoad},
		{name: "not a list", id: "object", wantErr: entities.ErrLoad},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := repo.Load(tt.id)
			assert.ErrorIs(t, err, tt.wantErr)

			if tt.wantErr == entities.ErrLoad {
				var loadErr *entities.LoadError
				require.ErrorAs(t, err, &loadErr)
				assert.Equal(t, tt.id, loadErr.ModuleID)
			}
		})
	}
}

func TestVocabularyRepository_EmptyList(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "empty.json", `[]`)

	repo := NewVocabularyRepository(dir, []entities.Module{{ID: "e", File: "empty.json"}}, nil)

	words, err := repo.Load("e")
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestVocabularyRepository_Modules(t *testing.T) {
	t.Parallel()

	modules := []entities.Module{{ID: "2", Name: "高中"}, {ID: "1", Name: "初中"}}
	repo := NewVocabularyRepository(t.TempDir(), modules, nil)

	got := repo.Modules()
	assert.Equal(t, modules, got)

	got[0].Name = "changed"
	assert.Equal(t, "高中", repo.Modules()[0].Name)

	m, err := repo.Module("1")
	require.NoError(t, err)
	assert.Equal(t, "初中", m.Name)
}

func TestVocabularyRepository_Preload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.json", `[{"word": "a", "translations": [{"translation": "一"}]}]`)
	writeFile(t, dir, "b.json", `[{"word": "b", "translations": [{"translation": "二"}]}]`)

	repo := NewVocabularyRepository(dir, []entities.Module{
		{ID: "a", File: "a.json"},
		{ID: "b", File: "b.json"},
	}, nil)
	require.NoError(t, repo.Preload(context.Background()))

	require.NoError(t, os.RemoveAll(dir))
	for _, id := range []string{"a", "b"} {
		words, err := repo.Load(id)
		require.NoError(t, err)
		assert.Len(t, words, 1)
	}
}

func TestVocabularyRepository_PreloadFailure(t *testing.T) {
	t.Parallel()

	repo := NewVocabularyRepository(t.TempDir(), []entities.Module{{ID: "x", File: "x.json"}}, nil)

	err := repo.Preload(context.Background())
	assert.ErrorIs(t, err, entities.ErrLoad)
}
