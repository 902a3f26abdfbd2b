package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/bft-labs/kanban/internal/domain"
)

var codec = sonic.ConfigStd

// EncodeLists serializes the full list sequence.
func EncodeLists(lists []domain.List) (string, error) {
	if lists == nil {
		lists = []domain.List{}
	}
	return codec.MarshalToString(lists)
}

// DecodeLists parses a persisted list sequence.
func DecodeLists(data string) ([]domain.List, error) {
	var lists []domain.List
	if err := codec.UnmarshalFromString(data, &lists); err != nil {
		return nil, err
	}
	if lists == nil {
		return nil, fmt.Errorf("snapshot is not a list array")
	}
	for i := range lists {
		if lists[i].Items == nil {
			lists[i].Items = []domain.Item{}
		}
	}
	return lists, nil
}

// WireAction is the JSON envelope a client submits: {"type": ..., "payload": ...}.
type WireAction struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type listUpdatePayload struct {
	ID string `json:"id"`
	domain.ListPatch
}

type itemUpdatePayload struct {
	ID string `json:"id"`
	domain.ItemPatch
}

// DecodeAction turns a wire envelope into a typed action.
// Unknown tags return domain.ErrUnknownActionType.
func DecodeAction(data []byte) (domain.Action, error) {
	var w WireAction
	if err := codec.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode action: %w", err)
	}
	payload := []byte(w.Payload)
	if len(payload) == 0 {
		payload = []byte("null")
	}

	decode := func(v interface{}) error {
		if err := codec.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("decode %s payload: %w", w.Type, err)
		}
		return nil
	}

	switch strings.ToUpper(strings.TrimSpace(w.Type)) {
	case domain.TypeAddList:
		var a domain.AddList
		if err := decode(&a); err != nil {
			return nil, err
		}
		return a, nil
	case domain.TypeRemoveList:
		var a domain.RemoveList
		if err := decode(&a); err != nil {
			return nil, err
		}
		return a, nil
	case domain.TypeUpdateList:
		var p listUpdatePayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return domain.UpdateList{ID: p.ID, Patch: p.ListPatch}, nil
	case domain.TypeUpdateItem:
		var p itemUpdatePayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return domain.UpdateItem{ID: p.ID, Patch: p.ItemPatch}, nil
	case domain.TypeSetDragging:
		var a domain.SetDragging
		if err := decode(&a); err != nil {
			return nil, err
		}
		return a, nil
	case domain.TypeSetClickedItem:
		var item *domain.ClickedItem
		if err := decode(&item); err != nil {
			return nil, err
		}
		return domain.SetClickedItem{Item: item}, nil
	case domain.TypeSetItemDragTarget:
		var target *domain.ItemDragTarget
		if err := decode(&target); err != nil {
			return nil, err
		}
		return domain.SetItemDragTarget{Target: target}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownActionType, w.Type)
	}
}
