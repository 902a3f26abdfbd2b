package app

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/bft-labs/kanban/internal/domain"
)

func TestEncodeDecodeLists(t *testing.T) {
	created := domain.NewTimestamp(time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.UTC))
	lists := []domain.List{
		{
			ID:       "1",
			Title:    "Todo",
			Items:    []domain.Item{{ID: "a", Title: "A", Description: "first", Created: created, Order: 0}},
			DropArea: &domain.DropArea{Left: 1, Top: 2, Width: 3, Height: 4.5},
			Order:    0,
			Created:  created,
		},
		{ID: "2", Title: "Done", Items: []domain.Item{}, Order: 1, Archived: true, Created: created},
	}

	raw, err := EncodeLists(lists)
	if err != nil {
		t.Fatalf("EncodeLists() error = %v", err)
	}
	got, err := DecodeLists(raw)
	if err != nil {
		t.Fatalf("DecodeLists() error = %v", err)
	}
	if !reflect.DeepEqual(got, lists) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", got, lists)
	}
}

func TestEncodeLists_NilIsEmptyArray(t *testing.T) {
	raw, err := EncodeLists(nil)
	if err != nil {
		t.Fatalf("EncodeLists(nil) error = %v", err)
	}
	if raw != "[]" {
		t.Errorf("EncodeLists(nil) = %q, want []", raw)
	}
}

func TestDecodeLists_Invalid(t *testing.T) {
	for _, raw := range []string{"", "{", "null", `{"id":"1"}`, `"lists"`} {
		if _, err := DecodeLists(raw); err == nil {
			t.Errorf("DecodeLists(%q) succeeded, want error", raw)
		}
	}
}

func TestDecodeLists_MissingItems(t *testing.T) {
	got, err := DecodeLists(`[{"id":"1","title":"T","order":0,"created":"2024-03-01T12:30:00.123Z"}]`)
	if err != nil {
		t.Fatalf("DecodeLists() error = %v", err)
	}
	if got[0].Items == nil {
		t.Error("Items = nil, want empty slice")
	}
	want := time.Date(2024, 3, 1, 12, 30, 0, 123000000, time.UTC)
	if !got[0].Created.Equal(want) {
		t.Errorf("Created = %v, want %v", got[0].Created, want)
	}
}

func TestDecodeAction(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.Action
	}{
		{"add list", `{"type":"ADD_LIST","payload":{"title":"New"}}`, domain.AddList{Title: "New"}},
		{"lowercase tag", `{"type":"add_list","payload":{"title":"x"}}`, domain.AddList{Title: "x"}},
		{"remove list", `{"type":"REMOVE_LIST","payload":{"id":"2"}}`, domain.RemoveList{ID: "2"}},
		{
			"update list",
			`{"type":"UPDATE_LIST","payload":{"id":"1","title":"Renamed","dropArea":null}}`,
			domain.UpdateList{ID: "1", Patch: domain.ListPatch{
				Title:    domain.Some("Renamed"),
				DropArea: domain.Optional[*domain.DropArea]{Set: true},
			}},
		},
		{
			"update item",
			`{"type":"UPDATE_ITEM","payload":{"id":"a","archived":true,"order":3}}`,
			domain.UpdateItem{ID: "a", Patch: domain.ItemPatch{
				Archived: domain.Some(true),
				Order:    domain.Some(3),
			}},
		},
		{"set dragging", `{"type":"SET_DRAGGING","payload":{"dragging":true}}`, domain.SetDragging{Dragging: true}},
		{
			"set clicked item",
			`{"type":"SET_CLICKED_ITEM","payload":{"itemId":"a","listId":"1","index":2,"dialogOpen":true}}`,
			domain.SetClickedItem{Item: &domain.ClickedItem{ItemID: "a", ListID: "1", Index: 2, DialogOpen: true}},
		},
		{"clear clicked item", `{"type":"SET_CLICKED_ITEM","payload":null}`, domain.SetClickedItem{}},
		{
			"set drag target",
			`{"type":"SET_ITEM_DRAG_TARGET","payload":{"listId":"2","index":0}}`,
			domain.SetItemDragTarget{Target: &domain.ItemDragTarget{ListID: "2", Index: 0}},
		},
		{"clear drag target", `{"type":"SET_ITEM_DRAG_TARGET"}`, domain.SetItemDragTarget{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAction([]byte(tt.in))
			if err != nil {
				t.Fatalf("DecodeAction() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeAction() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeAction_UpdateListAbsentFields(t *testing.T) {
	a, err := DecodeAction([]byte(`{"type":"UPDATE_LIST","payload":{"id":"1","archived":false}}`))
	if err != nil {
		t.Fatalf("DecodeAction() error = %v", err)
	}
	p := a.(domain.UpdateList).Patch
	if !p.Archived.Set {
		t.Error("archived: explicit false not marked set")
	}
	if p.Title.Set || p.Items.Set || p.DropArea.Set || p.Order.Set || p.Created.Set {
		t.Errorf("absent fields marked set: %+v", p)
	}
}

func TestDecodeAction_Errors(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantUnknown bool
	}{
		{"unknown tag", `{"type":"MOVE_BOARD","payload":{}}`, true},
		{"empty tag", `{"payload":{}}`, true},
		{"bad envelope", `not json`, false},
		{"bad payload", `{"type":"ADD_LIST","payload":{"title":7}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAction([]byte(tt.in))
			if err == nil {
				t.Fatal("DecodeAction() succeeded, want error")
			}
			if got := errors.Is(err, domain.ErrUnknownActionType); got != tt.wantUnknown {
				t.Errorf("errors.Is(err, ErrUnknownActionType) = %v, want %v (err: %v)", got, tt.wantUnknown, err)
			}
		})
	}
}
