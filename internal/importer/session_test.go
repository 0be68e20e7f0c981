package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/avery/staffdesk/internal/csvio"
	"github.com/avery/staffdesk/internal/fields"
	"github.com/avery/staffdesk/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubmitter records the last request and returns a canned summary.
type fakeSubmitter struct {
	lastReq *types.ImportRequest
	summary types.ImportSummary
	err     error
}

func (f *fakeSubmitter) Import(_ context.Context, req types.ImportRequest) (*types.ImportSummary, error) {
	f.lastReq = &req
	if f.err != nil {
		return nil, f.err
	}
	summary := f.summary
	return &summary, nil
}

func loadedSession(t *testing.T, sub Submitter, csv string) *Session {
	t.Helper()
	s := NewSession(sub)
	s.SelectModule("job-seekers", jobSeekerDefs())
	doc, err := csvio.NewDocument(csvio.Parse(csv))
	require.NoError(t, err)
	require.NoError(t, s.LoadFile(doc))
	return s
}

func TestSession_SelectThenLoadEntersMap(t *testing.T) {
	s := loadedSession(t, &fakeSubmitter{}, "First Name,Last Name\nAda,Lovelace")
	assert.Equal(t, StageMap, s.Stage())
	// auto-mapping ran since the mapping was untouched
	assert.Equal(t, "First Name", s.Mapping()["firstName"])
	assert.Equal(t, "Last Name", s.Mapping()["lastName"])
}

func TestSession_LoadBeforeSelectStaysAtSelect(t *testing.T) {
	s := NewSession(&fakeSubmitter{})
	doc, err := csvio.NewDocument(csvio.Parse("First Name\nAda"))
	require.NoError(t, err)
	require.NoError(t, s.LoadFile(doc))
	assert.Equal(t, StageSelect, s.Stage())

	// the pre-loaded file path: mapping is computed once definitions arrive
	s.SelectModule("job-seekers", jobSeekerDefs())
	assert.Equal(t, StageMap, s.Stage())
	assert.Equal(t, "First Name", s.Mapping()["firstName"])
}

func TestSession_AutoMapNeverClobbersUserEdits(t *testing.T) {
	s := NewSession(&fakeSubmitter{})
	doc, err := csvio.NewDocument(csvio.Parse("First Name,Last Name\nAda,Lovelace"))
	require.NoError(t, err)
	require.NoError(t, s.LoadFile(doc))

	s.SetMapping("firstName", "Last Name")

	// definitions arrive after the user already started editing
	s.SelectModule("job-seekers", jobSeekerDefs())
	assert.Equal(t, "Last Name", s.Mapping()["firstName"])
	_, auto := s.Mapping()["lastName"]
	assert.False(t, auto, "late definition fetch must not add auto-matches over user edits")
}

func TestSession_EmptyFileRejected(t *testing.T) {
	s := NewSession(&fakeSubmitter{})
	_, err := csvio.NewDocument(csvio.Parse(""))
	assert.ErrorIs(t, err, csvio.ErrEmptyFile)
	assert.ErrorIs(t, s.LoadFile(nil), csvio.ErrEmptyFile)
}

func TestSession_PreviewRefusedWhileInvalid(t *testing.T) {
	s := loadedSession(t, &fakeSubmitter{}, "First Name,Last Name\nAda,\nGrace,Hopper")

	err := s.ToPreview()
	require.Error(t, err)
	var vErr *ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, StageMap, s.Stage())

	// escape hatch: drop the broken row and retry
	dropped := s.SkipInvalidRows()
	assert.Equal(t, 1, dropped)
	require.NoError(t, s.ToPreview())
	assert.Equal(t, StagePreview, s.Stage())
	require.Len(t, s.Rows(), 1)
	assert.Equal(t, "Grace", s.Rows()[0].Raw["First Name"])
}

func TestSession_BackFromPreview(t *testing.T) {
	s := loadedSession(t, &fakeSubmitter{}, "First Name,Last Name\nAda,Lovelace")
	require.NoError(t, s.ToPreview())
	require.NoError(t, s.Back())
	assert.Equal(t, StageMap, s.Stage())
	// data survives the round trip
	require.Len(t, s.Rows(), 1)
}

func TestSession_SubmitBuildsMappedRecords(t *testing.T) {
	sub := &fakeSubmitter{summary: types.ImportSummary{Successful: 1}}
	s := loadedSession(t, sub, "First Name,Last Name,Extra\nAda,Lovelace,ignored")
	require.NoError(t, s.ToPreview())

	outcome, err := s.Submit(context.Background(), types.ImportOptions{SkipDuplicates: true})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Success)
	assert.Equal(t, StageUpload, s.Stage())

	require.NotNil(t, sub.lastReq)
	assert.Equal(t, "job-seekers", sub.lastReq.EntityType)
	assert.True(t, sub.lastReq.Options.SkipDuplicates)
	require.Len(t, sub.lastReq.Records, 1)
	record := sub.lastReq.Records[0]
	assert.Equal(t, "Ada", record["firstName"])
	assert.Equal(t, "Lovelace", record["lastName"])
	assert.Equal(t, 2, record["_row"])
	_, hasExtra := record["Extra"]
	assert.False(t, hasExtra, "unmapped columns never leave the client")
	assert.Equal(t, "First Name", sub.lastReq.FieldNameToLabel["firstName"])
}

func TestSession_SubmitRefusedWithZeroValidRows(t *testing.T) {
	sub := &fakeSubmitter{}
	s := loadedSession(t, sub, "First Name,Last Name\nAda,Lovelace")
	require.NoError(t, s.ToPreview())

	// last defense: rows flagged after preview are excluded client-side
	rows := s.Rows()
	rows[0].Errors = []string{"flagged"}

	_, err := s.Submit(context.Background(), types.ImportOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid records")
	assert.Equal(t, StagePreview, s.Stage())
	assert.Nil(t, sub.lastReq)
}

func TestSession_SubmitFailureStaysAtPreview(t *testing.T) {
	sub := &fakeSubmitter{err: fmt.Errorf("upstream unavailable")}
	s := loadedSession(t, sub, "First Name,Last Name\nAda,Lovelace")
	require.NoError(t, s.ToPreview())

	_, err := s.Submit(context.Background(), types.ImportOptions{})
	require.Error(t, err)
	assert.Equal(t, StagePreview, s.Stage())
	assert.Nil(t, s.Outcome())

	// manual retry succeeds without re-mapping or re-validating
	sub.err = nil
	sub.summary = types.ImportSummary{Successful: 1}
	_, err = s.Submit(context.Background(), types.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, StageUpload, s.Stage())
}

// resettingSubmitter resets its session mid-request, the way a user closing
// the importer abandons an in-flight upload.
type resettingSubmitter struct {
	session *Session
	summary types.ImportSummary
}

func (r *resettingSubmitter) Import(ctx context.Context, _ types.ImportRequest) (*types.ImportSummary, error) {
	r.session.Reset()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	summary := r.summary
	return &summary, nil
}

func TestSession_ResetCancelsInFlightSubmit(t *testing.T) {
	sub := &resettingSubmitter{summary: types.ImportSummary{Successful: 1}}
	s := NewSession(sub)
	sub.session = s
	s.SelectModule("job-seekers", jobSeekerDefs())
	doc, err := csvio.NewDocument(csvio.Parse("First Name,Last Name\nAda,Lovelace"))
	require.NoError(t, err)
	require.NoError(t, s.LoadFile(doc))
	require.NoError(t, s.ToPreview())

	_, err = s.Submit(context.Background(), types.ImportOptions{})
	require.Error(t, err)
	assert.Equal(t, StageSelect, s.Stage())
	assert.Nil(t, s.Outcome(), "stale completion must not write into reset state")
	assert.Empty(t, s.Rows())
	assert.Empty(t, s.Mapping())
}

func TestSession_ModuleChangeDiscardsRows(t *testing.T) {
	s := loadedSession(t, &fakeSubmitter{}, "First Name,Last Name\nAda,Lovelace")
	require.Len(t, s.Rows(), 1)

	s.SelectModule("organizations", []fields.Definition{
		{Name: "name", Label: "Name", Required: true},
	})
	assert.Equal(t, StageSelect, s.Stage())
	assert.Empty(t, s.Rows())
	assert.Empty(t, s.Mapping())
}
