package http

import (
	"task-intent/internal/interpret"
	"task-intent/internal/model"
)

// --- Request DTOs ---

type parseReq struct {
	Text string `json:"text" binding:"required,max=2000"`
}

func (r parseReq) toInput() interpret.ParseInput {
	return interpret.ParseInput{Text: r.Text}
}

// --- Response DTOs ---

type parseResp struct {
	RequestID string             `json:"request_id"`
	Outcome   model.ParseOutcome `json:"outcome"`
}

func (h *handler) newParseResp(requestID string, out model.ParseOutcome) parseResp {
	return parseResp{RequestID: requestID, Outcome: out}
}

type statsResp struct {
	CacheLen           int  `json:"cache_len"`
	CacheCapacity      int  `json:"cache_capacity"`
	InferenceAvailable bool `json:"inference_available"`
}

func (h *handler) newStatsResp(out interpret.StatsOutput) statsResp {
	return statsResp{
		CacheLen:           out.CacheLen,
		CacheCapacity:      out.CacheCapacity,
		InferenceAvailable: out.InferenceAvailable,
	}
}
