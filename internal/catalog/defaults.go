// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package catalog

import (
	"github.com/reia-project/reia-console/internal/domain/model"
	"github.com/reia-project/reia-console/pkg/constants"
)

// defaultResources mirrors the endpoints served by the backend API.
func defaultResources() []model.ResourceSpec {
	return []model.ResourceSpec{
		{
			Name:               constants.ResourceExposure,
			Title:              "Exposure Model",
			CollectionEndpoint: "/exposure",
			SubmitEndpoint:     "/exposure",
			Fields: []model.FieldSpec{
				{Name: "exposureJSON", Kind: model.FieldKindFile, Required: true},
				{Name: "exposureCSV", Kind: model.FieldKindFile, Required: true},
			},
			KeyField: constants.DefaultKeyField,
			Columns:  []string{"_oid", "name", "category", "taxonomysource", "costtypes", "tagnames", "assets_count", "sites_count"},
		},
		{
			Name:               constants.ResourceVulnerability,
			Title:              "Vulnerability Model",
			CollectionEndpoint: "/vulnerability",
			SubmitEndpoint:     "/vulnerability",
			Fields: []model.FieldSpec{
				{Name: "vulnerabilityModel", Kind: model.FieldKindFile, Required: true},
			},
			KeyField: constants.DefaultKeyField,
			Columns:  []string{"_oid", "losscategory", "assetcategory", "description", "functions_count"},
		},
		{
			Name:               constants.ResourceLossModel,
			Title:              "Loss Model",
			CollectionEndpoint: "/lossmodel",
			SubmitEndpoint:     "/lossmodel",
			Fields: []model.FieldSpec{
				{Name: "lossModel", Kind: model.FieldKindFile, Required: true},
				{Name: "assetCollection", Kind: model.FieldKindText, Required: true},
				{Name: "vulnerabilityModels", Kind: model.FieldKindText, Required: true},
			},
			KeyField: constants.DefaultKeyField,
			Columns: []string{
				"_oid", "description", "preparationcalculationmode", "maincalculationmode",
				"numberofgroundmotionfields", "_vulnerabilitymodels_oids", "_assetcollection_oid", "calculations_count",
			},
		},
		{
			Name:               constants.ResourceLossConfig,
			Title:              "Loss Config",
			CollectionEndpoint: "/lossconfig",
			SubmitEndpoint:     "/lossconfig",
			Fields: []model.FieldSpec{
				{Name: "lossCategory", Kind: model.FieldKindText, Required: true},
				{Name: "aggregateBy", Kind: model.FieldKindText},
				{Name: "lossModelId", Kind: model.FieldKindText, Required: true},
			},
			KeyField: constants.DefaultKeyField,
			Columns:  []string{"_oid", "losscategory", "aggregateby", "_lossmodel_oid"},
		},
		{
			Name:               constants.ResourceLossCalculation,
			Title:              "Loss Calculation",
			CollectionEndpoint: "/losscalculation",
			SubmitEndpoint:     "/calculation/run",
			Fields: []model.FieldSpec{
				{Name: "shakemap", Kind: model.FieldKindText, Required: true, Default: constants.DefaultShakemap},
			},
			KeyField:           constants.DefaultKeyField,
			Columns:            []string{"_oid", "losscategory", "_lossmodel_oid", "aggregateby", "timestamp_starttime"},
			RefetchAfterSubmit: true,
		},
	}
}
