package reading

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/deeklead/midori/internal/locale"
)

// UI strings are keyed by their English text. Like the draw prompts, every
// language other than English shows the Korean text.
var koreanText = [][2]string{
	{"🔮 Choose a spread", "🔮 스프레드를 선택하세요"},
	{"Question", "질문"},
	{"Reversed cards: %s", "역방향 카드: %s"},
	{"on", "켜짐"},
	{"off", "꺼짐"},
	{"%d cards", "카드 %d장"},
	{"  shuffled ×%d", "  셔플 ×%d"},
	{"%d of %d drawn", "%d/%d장 뽑음"},
	{"(reversed)", "(역방향)"},
	{"Saved to history %s", "기록에 저장됨 %s"},
	{"Could not save reading: %s", "리딩을 저장하지 못했습니다: %s"},
	{"This spread has no positions.", "이 스프레드에는 자리가 없습니다."},
	{"Pick a stack to put on top (1-3), esc to cancel", "맨 위에 올릴 더미를 고르세요 (1-3), esc: 취소"},
	{"enter: begin  •  ctrl+q: quick reading  •  esc: spreads", "enter: 시작  •  ctrl+q: 빠른 리딩  •  esc: 스프레드"},
	{"s: shuffle  •  c: cut  •  g: spread the cards", "s: 셔플  •  c: 컷  •  g: 카드 펼치기"},
	{"r: read again  •  m: spreads  •  q: quit", "r: 다시 보기  •  m: 스프레드  •  q: 종료"},
}

var uiCatalog = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, kv := range koreanText {
		_ = b.SetString(language.Korean, kv[0], kv[1])
	}
	return b
}()

// newPrinter returns the printer for the TUI's own text in tag's language.
func newPrinter(tag language.Tag) *message.Printer {
	ui := language.Korean
	if locale.Lang(tag) == "en" {
		ui = language.English
	}
	return message.NewPrinter(ui, message.Catalog(uiCatalog))
}
