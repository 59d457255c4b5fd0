package models

import (
	"encoding/json"
	"testing"
)

func TestTextUnmarshalJSONKeepsScalarSpelling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  Text
	}{
		{name: "string", input: `"INV-7"`, want: "INV-7"},
		{name: "integer", input: `1001`, want: "1001"},
		{name: "fraction", input: `12.50`, want: "12.50"},
		{name: "boolean", input: `true`, want: "true"},
		{name: "null", input: `null`, want: ""},
		{name: "array", input: `[1, 2]`, want: "[1,2]"},
		{name: "object", input: `{"a": 1}`, want: `{"a":1}`},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var got Text
			if err := json.Unmarshal([]byte(testCase.input), &got); err != nil {
				t.Fatalf("unmarshal %s: %v", testCase.input, err)
			}
			if got != testCase.want {
				t.Fatalf("unmarshal %s = %q, want %q", testCase.input, got, testCase.want)
			}
		})
	}
}

func TestRecordsDecodeNonStringTextFields(t *testing.T) {
	t.Parallel()

	var invoice Invoice
	if err := json.Unmarshal([]byte(`{"id":"inv_1","number":1001,"notes":5,"status":"paid","items":[{"description":42,"qty":1,"price":"3"}],"amount":"3"}`), &invoice); err != nil {
		t.Fatalf("unmarshal invoice: %v", err)
	}
	if invoice.Number != "1001" || invoice.Notes != "5" || invoice.Status != InvoiceStatusPaid {
		t.Fatalf("unexpected invoice text fields: %+v", invoice)
	}
	if len(invoice.Items) != 1 || invoice.Items[0].Description != "42" || invoice.Items[0].Price != 3 {
		t.Fatalf("unexpected items: %+v", invoice.Items)
	}

	var client Client
	if err := json.Unmarshal([]byte(`{"id":"cli_1","name":"Acme","phone":5551234}`), &client); err != nil {
		t.Fatalf("unmarshal client: %v", err)
	}
	if client.Phone != "5551234" {
		t.Fatalf("expected phone 5551234, got %q", client.Phone)
	}

	settings := Settings{UserID: "demo"}
	if err := json.Unmarshal([]byte(`{"taxId":123456,"invoicePrefix":"A-","invoiceNext":"7"}`), &settings); err != nil {
		t.Fatalf("unmarshal settings: %v", err)
	}
	if settings.UserID != "demo" || settings.TaxID != "123456" || settings.InvoiceNext == nil || *settings.InvoiceNext != 7 {
		t.Fatalf("unexpected settings: %+v", settings)
	}
}
