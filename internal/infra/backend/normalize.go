package backend

import (
	"encoding/json"

	"github.com/bryanwahyu/cyberlens-console/internal/domain/hub"
)

// Shape normalization. Endpoint hub yang sama bisa balikin bare array,
// objek wrapper, atau satu objek tunggal tergantung versi backend. Semua
// percobaan decode di sini eksplisit dan berurutan; hasil akhirnya selalu
// slice, parse gagal berarti slice kosong, tidak pernah error. Logika
// sniffing bentuk tidak boleh bocor keluar dari package ini.

func normalizeCaseList(data []byte) []hub.CaseSummary {
	// 1) bare array
	var arr []hub.CaseSummary
	if err := json.Unmarshal(data, &arr); err == nil {
		if arr == nil {
			return []hub.CaseSummary{}
		}
		return arr
	}

	// 2) wrapper {cases: [...]} (bentuk utama threat hub)
	var wrapped struct {
		Cases []hub.CaseSummary `json:"cases"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Cases != nil {
		return wrapped.Cases
	}

	// 3) satu objek case tunggal -> bungkus jadi slice
	var single hub.CaseSummary
	if err := json.Unmarshal(data, &single); err == nil && (single.CaseID != "" || single.FileID != "") {
		return []hub.CaseSummary{single}
	}

	return []hub.CaseSummary{}
}

func normalizeClusters(data []byte) *hub.Clusters {
	// 1) wrapper {total_clusters, clusters} (bentuk utama)
	var wrapped hub.Clusters
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Clusters != nil {
		return &wrapped
	}

	// 2) bare array of clusters
	var arr [][]string
	if err := json.Unmarshal(data, &arr); err == nil && arr != nil {
		return &hub.Clusters{TotalClusters: len(arr), Clusters: arr}
	}

	return &hub.Clusters{Clusters: [][]string{}}
}

func normalizeTopEntities(data []byte) []hub.TopEntity {
	// 1) bare array
	var arr []hub.TopEntity
	if err := json.Unmarshal(data, &arr); err == nil {
		if arr == nil {
			return []hub.TopEntity{}
		}
		return arr
	}

	// 2) wrapper {top: [...]} atau bentuk lama {top_entities: [...]}
	var wrapped struct {
		Top         []hub.TopEntity `json:"top"`
		TopEntities []hub.TopEntity `json:"top_entities"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		if wrapped.Top != nil {
			return wrapped.Top
		}
		if wrapped.TopEntities != nil {
			return wrapped.TopEntities
		}
	}

	return []hub.TopEntity{}
}
