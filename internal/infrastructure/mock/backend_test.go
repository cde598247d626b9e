// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package mock_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reia-project/reia-console/internal/catalog"
	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/internal/infrastructure/mock"
	"github.com/reia-project/reia-console/internal/infrastructure/rest"
	"github.com/reia-project/reia-console/internal/service"
	errs "github.com/reia-project/reia-console/pkg/errors"
)

func setupBackend(t *testing.T) (*mock.Backend, *rest.Client) {
	t.Helper()

	backend := mock.NewBackend(catalog.Default())
	server := httptest.NewServer(backend.NewHandler("/api/v1"))
	t.Cleanup(server.Close)

	config, err := rest.NewConfig(server.URL+"/api/v1", "5s")
	require.NoError(t, err)
	return backend, rest.NewClient(config)
}

func TestBackendExposureUpload(t *testing.T) {
	backend, client := setupBackend(t)
	backend.Seed("exposure", map[string]any{"name": "existing"})

	spec, err := catalog.Default().Lookup("exposure")
	require.NoError(t, err)

	view := service.NewRecordView(spec, client)
	require.NoError(t, view.Load(context.Background()))
	require.Len(t, view.Snapshot().Items, 1)

	ctrl, err := service.NewSubmissionController(spec, client, view)
	require.NoError(t, err)
	require.NoError(t, ctrl.SetField("exposureJSON",
		model.FileValue(model.FileFromBytes("exposure.json", []byte(`{"assets":[]}`)))))
	require.NoError(t, ctrl.SetField("exposureCSV",
		model.FileValue(model.FileFromBytes("exposure.csv", []byte("id,lon,lat\n1,8.5,47.3\n")))))

	require.NoError(t, ctrl.Submit(context.Background()))

	snap := view.Snapshot()
	assert.NoError(t, snap.Err)
	require.Len(t, snap.Items, 2)
	assert.Equal(t, "2", snap.Items[1].Key)

	stored := backend.Records("exposure")
	require.Len(t, stored, 2)
	assert.Equal(t, "exposure.json", stored[1]["exposureJSON"])
	assert.Equal(t, "exposure.csv", stored[1]["exposureCSV"])
	assert.EqualValues(t, 22, stored[1]["exposureCSV_size"])
}

func TestBackendLossConfigJSON(t *testing.T) {
	backend, client := setupBackend(t)

	fields := model.Fields{
		Order: []string{"lossCategory", "aggregateBy", "lossModelId"},
		Values: map[string]model.FieldValue{
			"lossCategory": model.TextValue("structural"),
			"lossModelId":  model.TextValue("3"),
		},
	}

	body, err := client.SubmitResource(context.Background(), "/lossconfig", fields)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_oid":1,"lossCategory":"structural","lossModelId":"3"}]`, string(body))

	assert.Len(t, backend.Records("lossconfig"), 1)
}

func TestBackendRejectsUndeclaredField(t *testing.T) {
	_, client := setupBackend(t)

	fields := model.Fields{
		Order: []string{"lossCategory", "lossModelId", "extra"},
		Values: map[string]model.FieldValue{
			"lossCategory": model.TextValue("structural"),
			"lossModelId":  model.TextValue("3"),
			"extra":        model.TextValue("x"),
		},
	}

	_, err := client.SubmitResource(context.Background(), "/lossconfig", fields)

	var reqErr errs.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusBadRequest, reqErr.StatusCode)
}

func TestBackendFailNext(t *testing.T) {
	backend, client := setupBackend(t)
	backend.Seed("vulnerability", map[string]any{"description": "v1"})

	backend.FailNext(http.StatusInternalServerError)

	_, err := client.FetchCollection(context.Background(), "/vulnerability")
	var reqErr errs.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "Internal Server Error", reqErr.StatusText)

	body, err := client.FetchCollection(context.Background(), "/vulnerability")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_oid":1,"description":"v1"}]`, string(body))
}

func TestBackendCalculationRun(t *testing.T) {
	backend, client := setupBackend(t)

	spec, err := catalog.Default().Lookup("losscalculation")
	require.NoError(t, err)

	view := service.NewRecordView(spec, client)
	ctrl, err := service.NewSubmissionController(spec, client, view)
	require.NoError(t, err)

	require.NoError(t, ctrl.SetField("shakemap", model.TextValue("model/shapefiles.zip")))
	require.NoError(t, ctrl.Submit(context.Background()))

	items := view.Snapshot().Items
	require.Len(t, items, 1)

	stored := backend.Records("losscalculation")
	require.Len(t, stored, 1)
	assert.Equal(t, "model/shapefiles.zip", stored[0]["shakemap"])
	_, err = time.Parse(time.RFC3339, stored[0]["timestamp_starttime"].(string))
	assert.NoError(t, err)
}

func TestBackendIsReady(t *testing.T) {
	_, client := setupBackend(t)
	assert.NoError(t, client.IsReady(context.Background()))
}
