package scanner

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ZaguanLabs/hanscan"
)

func extract(t *testing.T, src string) []hanscan.Candidate {
	t.Helper()
	cands, err := New(hanscan.ScriptHan).Extract("Test.cs", strings.NewReader(src))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	return cands
}

func raws(cands []hanscan.Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Raw)
	}
	return out
}

func TestExtract_EndToEnd(t *testing.T) {
	cands := extract(t, "// 抽卡\nvar s = \"抽卡道具不足\";")

	want := []hanscan.Candidate{{
		Raw:      "抽卡道具不足",
		Kind:     hanscan.KindPlain,
		Location: hanscan.SourceLocation{FileName: "Test.cs", Line: 2},
	}}
	if diff := cmp.Diff(want, cands); diff != "" {
		t.Errorf("Extract mismatch (-want +got):\n%s", diff)
	}
	if got := cands[0].Location.Pos(); got != "Test.cs---2" {
		t.Errorf("Pos() = %q", got)
	}
}

func TestExtract_Lines(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"plain literal", `label.text = "确定";`, []string{"确定"}},
		{"latin literal dropped", `var s = "hello";`, []string{}},
		{"debug call suppressed", `Debug.LogError("错误信息");`, []string{}},
		{"whole line suppressed", `var x = "错误信息"; Debug.LogError("other");`, []string{}},
		{"throw suppressed", `throw new System.ArgumentException("参数错误");`, []string{}},
		{"custom exception kept", `throw new GameException("参数错误");`, []string{"参数错误"}},
		{"console suppressed", `Console.WriteLine($"{a}完成");`, []string{}},
		{"attribute alone", `[Tooltip("提示文本")]`, []string{}},
		{"attribute with comment", `    [Header("标题")] // 注释`, []string{"标题"}},
		{"stacked attributes", `[Header("标题")][Range(0, 1)]`, []string{"标题"}},
		{"attribute after attribute", `[A][Tooltip("提示")]`, []string{"提示"}},
		{"attribute then code", `[Tooltip("提示")] public int x;`, []string{"提示"}},
		{"indexer is code", `names[0] = "名字";`, []string{"名字"}},
		{"interpolated placeholders only", `text = $"{cur}/{max}";`, []string{"{cur}/{max}"}},
		{"plain placeholders only", `text = "{0}/{1}";`, []string{}},
		{"interpolated with text", `text = $"等级{lv}";`, []string{"等级{lv}"}},
		{"verbatim interpolated", `text = $@"第{n}关";`, []string{"第{n}关"}},
		{"escaped quote", `text = "他说\"你好\"";`, []string{`他说\"你好\"`}},
		{"char literal quote", `if (c == '"') s = "引号";`, []string{"引号"}},
		{"quoted text in trailing comment", `x = 1; // "注释里的字"`, []string{"注释里的字"}},
		{"apostrophe in trailing comment", `x = "前"; // don't "后"`, []string{"前", "后"}},
		{"opener inside trailing comment", `x = 1; // /* "注" */`, []string{"注"}},
		{"slashes inside string", `url = "网址//路径";`, []string{"网址//路径"}},
		{"duplicates on one line", `a = "好" + b + "好";`, []string{"好"}},
		{"two literals", `Show("标题", "内容");`, []string{"标题", "内容"}},
		{"unterminated string", `s = "未结束`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := raws(extract(t, tt.src))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Extract(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

func TestExtract_Kinds(t *testing.T) {
	cands := extract(t, `Set("普通", $"插值{x}", @"逐字");`)

	want := []hanscan.LiteralKind{hanscan.KindPlain, hanscan.KindInterpolated, hanscan.KindPlain}
	if len(cands) != len(want) {
		t.Fatalf("got %d candidates, want %d", len(cands), len(want))
	}
	for i, c := range cands {
		if c.Kind != want[i] {
			t.Errorf("candidate %d kind = %v, want %v", i, c.Kind, want[i])
		}
	}
}

func TestExtract_BlockComments(t *testing.T) {
	src := strings.Join([]string{
		`var a = "之前";`,         // 1
		`/* 开始`,                // 2
		`var b = "注释中";`,        // 3
		`结束 */`,                // 4
		`var c = "之后";`,         // 5
		`var d = "同行"; /* x */`, // 6: opener line yields nothing
		`var e = "下一行";`,        // 7: same-line closer returns to code
		`s = "/* 不是注释 */";`,     // 8
	}, "\n")

	cands := extract(t, src)

	var got []string
	for _, c := range cands {
		got = append(got, c.Location.Pos()+" "+c.Raw)
	}
	want := []string{
		"Test.cs---1 之前",
		"Test.cs---5 之后",
		"Test.cs---7 下一行",
		"Test.cs---8 /* 不是注释 */",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("block comment mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_StateResetsPerFile(t *testing.T) {
	s := New(hanscan.ScriptHan)

	if _, err := s.Extract("A.cs", strings.NewReader("/* 未闭合")); err != nil {
		t.Fatal(err)
	}
	cands, err := s.Extract("B.cs", strings.NewReader(`x = "新文件";`))
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1 {
		t.Errorf("block comment state leaked into the next file: %v", cands)
	}
}

func TestExtract_BOMAndCRLF(t *testing.T) {
	cands := extract(t, "\ufeffusing System;\r\nvar s = \"确定\";\r\n")

	if len(cands) != 1 || cands[0].Raw != "确定" || cands[0].Location.Line != 2 {
		t.Errorf("unexpected candidates: %+v", cands)
	}
}

func TestExtract_UTF16(t *testing.T) {
	// "x=\"好\"\n" in UTF-16LE with BOM.
	src := []byte{0xFF, 0xFE, 'x', 0, '=', 0, '"', 0, 0x7D, 0x59, '"', 0, '\n', 0}

	cands, err := New(hanscan.ScriptHan).Extract("W.cs", strings.NewReader(string(src)))
	if err != nil {
		t.Fatal(err)
	}
	if len(cands) != 1 || cands[0].Raw != "好" {
		t.Errorf("unexpected candidates: %+v", cands)
	}
}

func TestExtract_ExtraPatterns(t *testing.T) {
	extra, err := CompilePatterns([]string{`GameLog\.`})
	if err != nil {
		t.Fatal(err)
	}
	s := New(hanscan.ScriptHan, WithSuppressionFilter(NewSuppressionFilter(extra...)))

	cands, err := s.Extract("X.cs", strings.NewReader("GameLog.Write(\"日志\");\nDebug.Log(\"调试\");\nShow(\"显示\");"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"显示"}, raws(cands)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_OtherScript(t *testing.T) {
	hangul, _ := hanscan.LookupScript("hangul")
	cands, err := New(hangul).Extract("K.cs", strings.NewReader(`a = "확인"; b = "确定";`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"확인"}, raws(cands)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}
