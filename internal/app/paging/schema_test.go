package paging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testEvent struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	StartsAt  time.Time  `json:"startsAt"`
	EndsAt    *time.Time `json:"endsAt"`
	Public    bool       `json:"public"`
	Score     float32
	Tags      []string `gorm:"-"`
	internal  string
	WriteOnly string `gorm:"->:false;<-"`
}

func TestIsValidProperty(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"Title", true},
		{"title", true},
		{"TITLE", true},
		{"starts_at", true},
		{"startsAt", true},
		{"StartsAt", true},
		{"ends_at", true},
		{"public", true},
		{"score", true},
		{"Tags", false},
		{"internal", false},
		{"WriteOnly", false},
		{"", false},
		{"title ", false},
		{"title desc", false},
		{"1=1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.valid, IsValidProperty[testEvent](tt.name))
		})
	}
}

func TestPropertyStrict(t *testing.T) {
	field, err := Property[testEvent]("STARTSAT")
	require.NoError(t, err)
	require.Equal(t, "StartsAt", field.Name)
	require.Equal(t, "starts_at", field.Column)
	require.Equal(t, "startsAt", field.JSON)

	_, err = Property[testEvent]("DROP TABLE")
	require.Error(t, err)

	var notFound *PropertyNotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "DROP TABLE", notFound.Property)
	require.Equal(t, "testEvent", notFound.Type)
	require.EqualError(t, err, `property "DROP TABLE" not found on testEvent`)
}

func TestSchemaOfIsCached(t *testing.T) {
	first, err := SchemaOf[testEvent]()
	require.NoError(t, err)
	second, err := SchemaOf[testEvent]()
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestSchemaKey(t *testing.T) {
	s, err := SchemaOf[testEvent]()
	require.NoError(t, err)
	require.NotNil(t, s.Key)
	require.Equal(t, "id", s.Key.Column)
}

func TestSchemaOfNonStruct(t *testing.T) {
	_, err := SchemaOf[int]()
	require.Error(t, err)
	require.False(t, IsValidProperty[int]("anything"))

	_, err = Property[int]("anything")
	require.Error(t, err)
}

func TestFieldCompare(t *testing.T) {
	early := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	late := early.Add(time.Hour)

	endsAt, err := Property[testEvent]("endsAt")
	require.NoError(t, err)
	require.Equal(t, -1, endsAt.Compare(testEvent{}, testEvent{EndsAt: &early}))
	require.Equal(t, 1, endsAt.Compare(testEvent{EndsAt: &late}, testEvent{EndsAt: &early}))
	require.Equal(t, 0, endsAt.Compare(testEvent{}, testEvent{}))

	public, err := Property[testEvent]("public")
	require.NoError(t, err)
	require.Equal(t, -1, public.Compare(testEvent{Public: false}, testEvent{Public: true}))

	score, err := Property[testEvent]("Score")
	require.NoError(t, err)
	require.Equal(t, 1, score.Compare(&testEvent{Score: 2.5}, &testEvent{Score: 1}))
	require.Equal(t, -1, score.Compare((*testEvent)(nil), &testEvent{Score: 1}))
}
