package messages

import (
	"errors"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/vancomm/minesweeper/internal/board"
	"github.com/vancomm/minesweeper/internal/command"
)

type Key string

const (
	Welcome          Key = "welcome"
	Congratulate     Key = "congratulate"
	RequiresAction   Key = "requires_an_action"
	StreamError      Key = "stream_error"
	InvalidInput     Key = "invalid_input"
	InvalidPosition  Key = "invalid_position"
	UnknownOperation Key = "unknown_operation"
	OpenRepeatedly   Key = "open_repeatedly"
	MarkRepeatedly   Key = "mark_repeatedly"
	UnmarkRepeatedly Key = "unmark_repeatedly"
	OpenFailed       Key = "open_failed"
	MarkFailed       Key = "mark_failed"
	UnmarkFailed     Key = "unmark_failed"
	MineHit          Key = "mine_hit"
)

var english = map[Key]string{
	Welcome: "Welcome to Minesweeper.\n" +
		"Have fun!\n" +
		"\n" +
		"Please enter the size of the game board and the first open position to start the game...\n",
	Congratulate:     "You win!\nPress Enter to end the game.\n",
	RequiresAction:   "Please enter one of 'o' (open), 'm' (mark), 'u' (unmark).\n",
	StreamError:      "Please enter the correct parameters.\n",
	InvalidInput:     "The input is invalid!\n",
	InvalidPosition:  "The location is invalid.\n",
	UnknownOperation: "Unknown operation. Please enter one of 'o' (open), 'm' (mark), 'u' (unmark).\n",
	OpenRepeatedly:   "Open repeatedly!\n",
	MarkRepeatedly:   "Mark repeatedly!\n",
	UnmarkRepeatedly: "This block has not been marked!\n",
	OpenFailed:       "Blocks that have already been marked cannot be opened.\n",
	MarkFailed:       "It is not possible to mark a block that has already been opened.\n",
	UnmarkFailed:     "It is not possible to unmark a block that has already been opened.\n",
	MineHit:          "The block is a mine!\n",
}

var chinese = map[Key]string{
	Welcome: "欢迎来到扫雷。\n" +
		"玩得愉快！\n" +
		"\n" +
		"请输入游戏板的大小和第一个打开的位置以开始游戏...\n",
	Congratulate:     "你赢了!\n按Enter键以结束游戏...\n",
	RequiresAction:   "请输入‘o’（打开），‘m’（标记），‘u’（取消标记）中的其中一个。\n",
	StreamError:      "请输入正确的参数。\n",
	InvalidInput:     "输入无效！\n",
	InvalidPosition:  "坐标无效。\n",
	UnknownOperation: "未知的操作。请输入‘o’（打开），‘m’（标记），‘u’（取消标记）中的其中一个。\n",
	OpenRepeatedly:   "这一个块已经被打开了！\n",
	MarkRepeatedly:   "这一个块已经被标记了！\n",
	UnmarkRepeatedly: "这一个块没有被标记过！\n",
	OpenFailed:       "被标记的块不能被打开。\n",
	MarkFailed:       "被打开的块不能被标记。\n",
	UnmarkFailed:     "被打开的块不能被取消标记。\n",
	MineHit:          "这个块是一个雷！\n",
}

var (
	supported = []language.Tag{language.English, language.SimplifiedChinese}
	matcher   = language.NewMatcher(supported)
	cat       = newCatalog()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, texts := range map[language.Tag]map[Key]string{
		language.English:           english,
		language.SimplifiedChinese: chinese,
	} {
		for k, v := range texts {
			if err := b.SetString(tag, string(k), v); err != nil {
				panic(err)
			}
		}
	}
	return b
}

type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter picks the closest supported language for lang, an IETF tag
// such as "en" or "zh-CN". Unknown or malformed tags fall back to English.
func NewPrinter(lang string) *Printer {
	tag := language.English
	if t, err := language.Parse(lang); err == nil {
		_, i, confidence := matcher.Match(t)
		if confidence != language.No {
			tag = supported[i]
		}
	}
	return &Printer{
		tag: tag,
		p:   message.NewPrinter(tag, message.Catalog(cat)),
	}
}

func (p *Printer) Tag() language.Tag {
	return p.tag
}

func (p *Printer) Text(k Key) string {
	return p.p.Sprintf(string(k))
}

var outcomes = map[board.Kind]map[board.Action]Key{
	board.KindDuplicateOperation: {
		board.ActionOpen:   OpenRepeatedly,
		board.ActionMark:   MarkRepeatedly,
		board.ActionUnmark: UnmarkRepeatedly,
	},
	board.KindOperationFailure: {
		board.ActionOpen:   OpenFailed,
		board.ActionMark:   MarkFailed,
		board.ActionUnmark: UnmarkFailed,
	},
}

// KeyOf maps a board or command error to the message shown to the player.
func KeyOf(err error) Key {
	var opErr *board.OpError
	if errors.As(err, &opErr) {
		if k, ok := outcomes[opErr.Kind][opErr.Action]; ok {
			return k
		}
	}
	switch {
	case errors.Is(err, board.ErrMineHit):
		return MineHit
	case errors.Is(err, board.ErrOutOfRange):
		return InvalidPosition
	case errors.Is(err, command.ErrUnknownAction):
		return UnknownOperation
	case errors.Is(err, command.ErrArgCount), errors.Is(err, command.ErrBadCoordinate):
		return StreamError
	default:
		return InvalidInput
	}
}

// Outcome is the localized text for err.
func (p *Printer) Outcome(err error) string {
	return p.Text(KeyOf(err))
}
