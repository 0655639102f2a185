package reconcile

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fields struct {
	Name string
	Code string
}

func insertable(f fields) bool { return f.Name != "" && f.Code != "" }
func changed(f fields) bool    { return f.Name != "" || f.Code != "" }

func TestPartitionSplitsNewAndExisting(t *testing.T) {
	s := NewSet[fields]()
	s.StageNew("tmp-1", fields{Name: "Benali Karim", Code: "EMP-001"})
	s.StageEdit("01HX1", fields{Name: "Cherif Samir"})
	s.StageNew("tmp-2", fields{Name: "Meziane Lila", Code: "EMP-002"})

	p := s.Partition(insertable, changed)

	require.Len(t, p.Inserts, 2)
	assert.Equal(t, "EMP-001", p.Inserts[0].Code)
	assert.Equal(t, "EMP-002", p.Inserts[1].Code)
	require.Len(t, p.Updates, 1)
	assert.Equal(t, "01HX1", p.Updates[0].ID)
	assert.Equal(t, 0, p.Skipped)
}

func TestPartitionSkipsIncompleteNewRows(t *testing.T) {
	s := NewSet[fields]()
	s.StageNew("tmp-1", fields{Name: "Benali Karim"}) // no code
	s.StageNew("tmp-2", fields{Code: "EMP-002"})      // no name
	s.StageNew("tmp-3", fields{Name: "Meziane Lila", Code: "EMP-003"})

	p := s.Partition(insertable, changed)

	require.Len(t, p.Inserts, 1)
	assert.Equal(t, "EMP-003", p.Inserts[0].Code)
	assert.Equal(t, 2, p.Skipped)
	// |inserts| + |skipped| accounts for every staged new row.
	assert.Equal(t, s.Len(), len(p.Inserts)+p.Skipped)
}

func TestPartitionDropsNoOpEdits(t *testing.T) {
	s := NewSet[fields]()
	s.StageEdit("01HX1", fields{})
	s.StageEdit("01HX2", fields{Name: "renamed"})

	p := s.Partition(insertable, changed)

	assert.Empty(t, p.Inserts)
	require.Len(t, p.Updates, 1)
	assert.Equal(t, "01HX2", p.Updates[0].ID)
}

func TestPartitionKeepsStagingOrder(t *testing.T) {
	s := NewSet[fields]()
	for i := 9; i >= 0; i-- {
		s.StageEdit(fmt.Sprintf("id-%d", i), fields{Name: "x"})
	}

	p := s.Partition(insertable, changed)

	require.Len(t, p.Updates, 10)
	for i, u := range p.Updates {
		assert.Equal(t, fmt.Sprintf("id-%d", 9-i), u.ID)
	}
}

func TestRestagingReplacesFieldsWithoutDuplicating(t *testing.T) {
	s := NewSet[fields]()
	s.StageEdit("01HX1", fields{Name: "first"})
	s.StageEdit("01HX2", fields{Name: "other"})
	s.StageEdit("01HX1", fields{Name: "second"})

	p := s.Partition(insertable, changed)

	require.Len(t, p.Updates, 2)
	// Position is preserved, fields reflect the latest edit.
	assert.Equal(t, "01HX1", p.Updates[0].ID)
	assert.Equal(t, "second", p.Updates[0].Fields.Name)
	assert.Equal(t, "01HX2", p.Updates[1].ID)
}

func TestEmptySet(t *testing.T) {
	p := NewSet[fields]().Partition(insertable, changed)
	assert.Empty(t, p.Inserts)
	assert.Empty(t, p.Updates)
	assert.Equal(t, 0, p.Skipped)
}
