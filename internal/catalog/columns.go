package catalog

import "denizquiz/internal/sheets"

// Canonical field names
const (
	fieldID          = "id"
	fieldEpisode     = "episode"
	fieldName        = "name"
	fieldLocked      = "locked"
	fieldDescription = "description"
	fieldText        = "text"
	fieldCorrect     = "correct"
	fieldDifficulty  = "difficulty"
	fieldPoints      = "points"
	fieldOptionA     = "option_a"
	fieldOptionB     = "option_b"
	fieldOptionC     = "option_c"
	fieldOptionD     = "option_d"
)

// Columns maps each canonical field to the sheet headers that may carry it,
// in priority order. The sheet's headers have changed between revisions and
// between English and Turkish, so every known spelling stays listed.
type Columns map[string][]string

// Value returns the first non-empty cell for field
func (c Columns) Value(row sheets.Row, field string) (string, bool) {
	return row.Lookup(c[field]...)
}

// EpisodeColumns is the alias table for the episodes sheet
var EpisodeColumns = Columns{
	fieldID:          {"episode_id", "id", "bölüm_no", "bolum_no"},
	fieldName:        {"episode_name", "name", "bölüm_adı", "bolum_adi"},
	fieldLocked:      {"is_locked", "durum"},
	fieldDescription: {"description", "açıklama", "aciklama"},
}

// QuestionColumns is the alias table for the questions sheet
var QuestionColumns = Columns{
	fieldEpisode:    {"episode_id", "episode", "bölüm_no", "bolum_no"},
	fieldID:         {"question_id", "id"},
	fieldText:       {"question", "text", "soru"},
	fieldOptionA:    {"option_a", "a", "şık_a", "sik_a"},
	fieldOptionB:    {"option_b", "b", "şık_b", "sik_b"},
	fieldOptionC:    {"option_c", "c", "şık_c", "sik_c"},
	fieldOptionD:    {"option_d", "d", "şık_d", "sik_d"},
	fieldCorrect:    {"correct_answer", "correct", "doğru_cevap", "dogru_cevap"},
	fieldDifficulty: {"difficulty", "zorluk"},
	fieldPoints:     {"points", "puan"},
}

var optionFields = map[string]string{
	"A": fieldOptionA,
	"B": fieldOptionB,
	"C": fieldOptionC,
	"D": fieldOptionD,
}

// lockedValues are the durum/is_locked cells that mean "locked"
var lockedValues = map[string]bool{
	"kilitli": true,
	"locked":  true,
	"true":    true,
	"1":       true,
}
