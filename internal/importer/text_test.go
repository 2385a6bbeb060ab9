package importer

import "testing"

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name         string
		input        []byte
		wantText     string
		wantEncoding string
	}{
		{
			name:         "plain utf-8",
			input:        []byte("Prénom,Nom"),
			wantText:     "Prénom,Nom",
			wantEncoding: EncodingUTF8,
		},
		{
			name:         "utf-8 with bom",
			input:        append([]byte{0xEF, 0xBB, 0xBF}, "Prénom,Nom"...),
			wantText:     "Prénom,Nom",
			wantEncoding: EncodingUTF8BOM,
		},
		{
			name:         "windows-1252",
			input:        []byte{'P', 'r', 0xE9, 'n', 'o', 'm', ';', 'N', 'o', 'm'},
			wantText:     "Prénom;Nom",
			wantEncoding: EncodingWindows1252,
		},
		{
			name:         "empty",
			input:        nil,
			wantText:     "",
			wantEncoding: EncodingUTF8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc, err := DecodeText(tt.input)
			if err != nil {
				t.Fatalf("DecodeText() error = %v", err)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if enc != tt.wantEncoding {
				t.Errorf("encoding = %q, want %q", enc, tt.wantEncoding)
			}
		})
	}
}
