package gridact

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/gridact/gridact-go/pkg/gridact/models"
)

func TestParseActionsYAML(t *testing.T) {
	data := []byte(`
- type: values
  target: A1:B2
  data: "[[1,2],[3,4]]"
- type: sort
  target: A1:B2
  data: '{"column":1,"ascending":false}'
`)
	actions, err := ParseActions(data)
	if err != nil {
		t.Fatalf("ParseActions failed: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("got %d actions", len(actions))
	}
	if actions[0].Type != "values" || actions[0].Target != "A1:B2" || actions[0].Data != "[[1,2],[3,4]]" {
		t.Errorf("first action = %+v", actions[0])
	}
	if actions[1].Type != "sort" {
		t.Errorf("second action = %+v", actions[1])
	}
}

func TestParseActionsJSON(t *testing.T) {
	data := []byte(`[
  {"type": "removeDuplicates", "target": "A1:B4", "data": "{\"columns\":[0]}"},
  {"type": "chart", "source": "A1:C13", "chartType": "pie", "title": "Mix"}
]`)
	actions, err := ParseActions(data)
	if err != nil {
		t.Fatalf("ParseActions failed: %v", err)
	}
	if len(actions) != 2 {
		t.Fatalf("got %d actions", len(actions))
	}
	if actions[0].Type != "removeDuplicates" || actions[0].Data != `{"columns":[0]}` {
		t.Errorf("first action = %+v", actions[0])
	}
	if actions[1].ChartType != "pie" || actions[1].Title != "Mix" {
		t.Errorf("second action = %+v", actions[1])
	}
}

func TestParseActionsInvalid(t *testing.T) {
	if _, err := ParseActions([]byte(`type: not-a-list`)); err == nil {
		t.Error("ParseActions accepted a non-list document")
	}
}

func TestApplyFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.xlsx")
	out := filepath.Join(dir, "out.xlsx")

	f := excelize.NewFile()
	if err := f.SaveAs(in); err != nil {
		t.Fatal(err)
	}
	f.Close()

	actions := []models.ActionRecord{
		{Type: "values", Target: "A1:B2", Data: `[["a",1],["a",2]]`},
		{Type: "removeDuplicates", Target: "A1:B2", Data: `{"columns":[0]}`},
	}
	results, err := ApplyFile(context.Background(), in, actions, Options{OutputPath: out})
	if err != nil {
		t.Fatalf("ApplyFile failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[1].RemovedCount != 1 {
		t.Errorf("removedCount = %d, expected 1", results[1].RemovedCount)
	}

	saved, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("reopening output failed: %v", err)
	}
	defer saved.Close()
	a1, _ := saved.GetCellValue("Sheet1", "A1")
	a2, _ := saved.GetCellValue("Sheet1", "A2")
	if a1 != "a" || a2 != "" {
		t.Errorf("A1=%q A2=%q, expected deduped block", a1, a2)
	}
}
