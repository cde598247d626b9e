// Copyright The REIA Console Authors.
// SPDX-License-Identifier: MIT

package model

import "strconv"

// ExposureRecord is an asset collection as listed by the backend
type ExposureRecord struct {
	ID             int      `json:"_oid"`
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	TaxonomySource string   `json:"taxonomysource"`
	CostTypes      []string `json:"costtypes"`
	TagNames       []string `json:"tagnames"`
	AssetsCount    int      `json:"assets_count"`
	SitesCount     int      `json:"sites_count"`
}

// RecordKey returns the record key.
func (r ExposureRecord) RecordKey() string { return strconv.Itoa(r.ID) }

// VulnerabilityRecord is a vulnerability model as listed by the backend
type VulnerabilityRecord struct {
	ID             int    `json:"_oid"`
	LossCategory   string `json:"losscategory"`
	AssetCategory  string `json:"assetcategory"`
	Description    string `json:"description"`
	FunctionsCount int    `json:"functions_count"`
}

// RecordKey returns the record key.
func (r VulnerabilityRecord) RecordKey() string { return strconv.Itoa(r.ID) }

// LossModelRecord is a loss model as listed by the backend
type LossModelRecord struct {
	ID                         int     `json:"_oid"`
	Description                string  `json:"description"`
	PreparationCalculationMode string  `json:"preparationcalculationmode"`
	MainCalculationMode        string  `json:"maincalculationmode"`
	NumberOfGroundMotionFields int     `json:"numberofgroundmotionfields"`
	MaximumDistance            float64 `json:"maximumdistance"`
	RandomSeed                 int     `json:"randomseed"`
	MasterSeed                 int     `json:"masterseed"`
	TruncationLevel            float64 `json:"truncationlevel"`
	VulnerabilityModelIDs      []int   `json:"_vulnerabilitymodels_oids"`
	AssetCollectionID          int     `json:"_assetcollection_oid"`
	CalculationsCount          int     `json:"calculations_count"`
}

// RecordKey returns the record key.
func (r LossModelRecord) RecordKey() string { return strconv.Itoa(r.ID) }

// LossConfigRecord is a loss configuration as listed by the backend
type LossConfigRecord struct {
	ID           int    `json:"_oid"`
	LossCategory string `json:"losscategory"`
	AggregateBy  string `json:"aggregateby"`
	LossModelID  int    `json:"_lossmodel_oid"`
}

// RecordKey returns the record key.
func (r LossConfigRecord) RecordKey() string { return strconv.Itoa(r.ID) }

// LossCalculationRecord is a calculation run as listed by the backend
type LossCalculationRecord struct {
	ID                 int    `json:"_oid"`
	LossCategory       string `json:"losscategory"`
	LossModelID        int    `json:"_lossmodel_oid"`
	AggregateBy        string `json:"aggregateby"`
	TimestampStartTime string `json:"timestamp_starttime"`
}

// RecordKey returns the record key.
func (r LossCalculationRecord) RecordKey() string { return strconv.Itoa(r.ID) }
