package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subseadata/ifdocatalog/validation"
)

const (
	testCachedBase = "https://cached.worms.test/rest"
	testLiveBase   = "https://live.worms.test/rest"
)

func newTestWormsService(t *testing.T) *WormsService {
	t.Helper()
	s := NewWormsService(testCachedBase, testLiveBase, 5*time.Second)
	httpmock.ActivateNonDefault(s.client)
	t.Cleanup(httpmock.DeactivateAndReset)
	return s
}

func requireFieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestVerifyAphiaIDCachedHit(t *testing.T) {
	s := newTestWormsService(t)
	httpmock.RegisterResponder("GET", testCachedBase+"/AphiaRecordByAphiaID/127160",
		httpmock.NewStringResponder(http.StatusOK, `{"AphiaID": 127160}`))

	err := s.VerifyAphiaID(context.Background(), "127160")
	require.NoError(t, err)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+testCachedBase+"/AphiaRecordByAphiaID/127160"])
	assert.Zero(t, info["GET "+testLiveBase+"/AphiaRecordByAphiaID/127160"])

	// second call answered from the in-process cache
	err = s.VerifyAphiaID(context.Background(), "127160")
	require.NoError(t, err)
	info = httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+testCachedBase+"/AphiaRecordByAphiaID/127160"])
}

func TestVerifyAphiaIDLiveFallback(t *testing.T) {
	s := newTestWormsService(t)
	httpmock.RegisterResponder("GET", testCachedBase+"/AphiaRecordByAphiaID/127160",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))
	httpmock.RegisterResponder("GET", testLiveBase+"/AphiaRecordByAphiaID/127160",
		httpmock.NewStringResponder(http.StatusOK, `{"AphiaID": 127160}`))

	err := s.VerifyAphiaID(context.Background(), "127160")
	require.NoError(t, err)

	info := httpmock.GetCallCountInfo()
	assert.Equal(t, 1, info["GET "+testLiveBase+"/AphiaRecordByAphiaID/127160"])
}

func TestVerifyAphiaIDInvalid(t *testing.T) {
	s := newTestWormsService(t)
	httpmock.RegisterResponder("GET", testCachedBase+"/AphiaRecordByAphiaID/999",
		httpmock.NewStringResponder(http.StatusNoContent, ""))
	httpmock.RegisterResponder("GET", testLiveBase+"/AphiaRecordByAphiaID/999",
		httpmock.NewStringResponder(http.StatusNoContent, ""))

	err := s.VerifyAphiaID(context.Background(), "999")
	require.Error(t, err)
	errs := requireFieldErrors(t, err)
	assert.Equal(t, []string{"invalid AphiaID"}, errs["lowest_aphia_id"])
}

func TestVerifyAphiaIDBadRequest(t *testing.T) {
	s := newTestWormsService(t)
	httpmock.RegisterResponder("GET", testCachedBase+"/AphiaRecordByAphiaID/abc",
		httpmock.NewStringResponder(http.StatusBadRequest, ""))
	httpmock.RegisterResponder("GET", testLiveBase+"/AphiaRecordByAphiaID/abc",
		httpmock.NewStringResponder(http.StatusBadRequest, ""))

	err := s.VerifyAphiaID(context.Background(), "abc")
	require.Error(t, err)
	errs := requireFieldErrors(t, err)
	assert.Equal(t, []string{"invalid AphiaID"}, errs["lowest_aphia_id"])
}

func TestVerifyAphiaIDUnavailable(t *testing.T) {
	s := newTestWormsService(t)
	httpmock.RegisterResponder("GET", testCachedBase+"/AphiaRecordByAphiaID/127160",
		httpmock.NewErrorResponder(assert.AnError))
	httpmock.RegisterResponder("GET", testLiveBase+"/AphiaRecordByAphiaID/127160",
		httpmock.NewErrorResponder(assert.AnError))

	err := s.VerifyAphiaID(context.Background(), "127160")
	require.Error(t, err)
	errs := requireFieldErrors(t, err)
	assert.Equal(t, []string{"WoRMS API unavailable. Please try again later."}, errs["lowest_aphia_id"])
}

func TestVerifyAphiaIDServerError(t *testing.T) {
	s := newTestWormsService(t)
	httpmock.RegisterResponder("GET", testCachedBase+"/AphiaRecordByAphiaID/127160",
		httpmock.NewStringResponder(http.StatusBadGateway, ""))
	httpmock.RegisterResponder("GET", testLiveBase+"/AphiaRecordByAphiaID/127160",
		httpmock.NewStringResponder(http.StatusBadGateway, ""))

	err := s.VerifyAphiaID(context.Background(), "127160")
	require.Error(t, err)
	errs := requireFieldErrors(t, err)
	assert.Equal(t, []string{"WoRMS API unavailable. Please try again later."}, errs["lowest_aphia_id"])
}
