package spread

var oneCard = Definition{
	Type:        TypeOneCard,
	Title:       Text{KO: "원카드", EN: "One Card"},
	Description: Text{KO: "오늘 필요한 핵심 메시지 한 장으로 빠르게 리딩합니다.", EN: "A single card to receive the core message you need today."},
	QuestionPlaceholder: Text{
		KO: "간단한 질문을 남겨보세요 (선택)",
		EN: "Add a quick question (optional)",
	},
	Layout: Layout{Columns: 1, Rows: 1},
	Positions: []Position{
		{
			Slot:        "one_focus",
			Title:       Text{KO: "핵심 메시지", EN: "Core Message"},
			Description: Text{KO: "현재 상황을 가장 잘 비추는 카드", EN: "The card that best reflects your situation now."},
			Order:       1,
			Placement:   Placement{Column: 0, Row: 0},
		},
	},
	DefaultUseReversed: true,
}

var energyAdvice = Definition{
	Type:        TypeEnergyAdvice,
	Title:       Text{KO: "투카드", EN: "Two Card"},
	Description: Text{KO: "2장의 카드를 나란히 펼쳐 빠르게 핵심을 봅니다.", EN: "Two side-by-side cards to see the core quickly."},
	QuestionPlaceholder: Text{
		KO: "집중하려는 주제를 적어주세요 (선택)",
		EN: "Write the topic you're focusing on (optional)",
	},
	Layout: Layout{Columns: 2, Rows: 1},
	Positions: []Position{
		{
			Slot:        "energy_now",
			Title:       Text{KO: "첫번째 카드", EN: "First Card"},
			Description: Text{KO: "상황 또는 핵심 포인트", EN: "Current situation or main point."},
			Order:       1,
			Placement:   Placement{Column: 0, Row: 0},
		},
		{
			Slot:        "energy_advice",
			Title:       Text{KO: "두번째 카드", EN: "Second Card"},
			Description: Text{KO: "보완 또는 조언", EN: "Complementary energy or advice."},
			Order:       2,
			Placement:   Placement{Column: 1, Row: 0},
		},
	},
	DefaultUseReversed: true,
}

var pastPresentFuture = Definition{
	Type:        TypePastPresentFuture,
	Title:       Text{KO: "쓰리카드", EN: "Three Card"},
	Description: Text{KO: "3장의 카드를 순서대로 배열해 상황을 간단히 읽습니다.", EN: "Read the situation with three cards laid out in order."},
	QuestionPlaceholder: Text{
		KO: "궁금한 상황을 짧게 적어주세요 (선택)",
		EN: "Write your question briefly (optional)",
	},
	Layout: Layout{Columns: 3, Rows: 1},
	Positions: []Position{
		{
			Slot:        "ppf_past",
			Title:       Text{KO: "첫번째 카드", EN: "First Card"},
			Description: Text{KO: "첫 흐름 또는 배경", EN: "Initial flow or background."},
			Order:       1,
			Placement:   Placement{Column: 0, Row: 0},
		},
		{
			Slot:        "ppf_present",
			Title:       Text{KO: "두번째 카드", EN: "Second Card"},
			Description: Text{KO: "현재 핵심 메시지", EN: "The core message of the present."},
			Order:       2,
			Placement:   Placement{Column: 1, Row: 0},
		},
		{
			Slot:        "ppf_future",
			Title:       Text{KO: "세번째 카드", EN: "Third Card"},
			Description: Text{KO: "다음으로 이어질 가능성", EN: "What is likely to unfold next."},
			Order:       3,
			Placement:   Placement{Column: 2, Row: 0},
		},
	},
	DefaultUseReversed: true,
}

var pathForward = Definition{
	Type:        TypePathForward,
	Title:       Text{KO: "포카드", EN: "Four Card"},
	Description: Text{KO: "4장의 카드로 상황과 다음 단계를 단계별로 훑습니다.", EN: "Four cards to scan the situation and next steps."},
	QuestionPlaceholder: Text{
		KO: "보고 싶은 상황을 적어주세요 (선택)",
		EN: "Describe the situation you want to explore (optional)",
	},
	Layout: Layout{Columns: 4, Rows: 1},
	Positions: []Position{
		{
			Slot:        "path_now",
			Title:       Text{KO: "첫번째 카드", EN: "First Card"},
			Description: Text{KO: "출발점 혹은 현재", EN: "Starting point or present."},
			Order:       1,
			Placement:   Placement{Column: 0, Row: 0},
		},
		{
			Slot:        "path_challenge",
			Title:       Text{KO: "두번째 카드", EN: "Second Card"},
			Description: Text{KO: "지나야 할 요소", EN: "The obstacle to move through."},
			Order:       2,
			Placement:   Placement{Column: 1, Row: 0},
		},
		{
			Slot:        "path_guidance",
			Title:       Text{KO: "세번째 카드", EN: "Third Card"},
			Description: Text{KO: "도움이 되는 관점", EN: "Perspective that helps."},
			Order:       3,
			Placement:   Placement{Column: 2, Row: 0},
		},
		{
			Slot:        "path_outcome",
			Title:       Text{KO: "네번째 카드", EN: "Fourth Card"},
			Description: Text{KO: "이어질 결과/다음 단계", EN: "Likely outcome or next step."},
			Order:       4,
			Placement:   Placement{Column: 3, Row: 0},
		},
	},
	DefaultUseReversed: true,
}

// The crossing card shares the center cell with the present card and is
// drawn rotated on top of it.
var celticCross = Definition{
	Type:        TypeCelticCross,
	Title:       Text{KO: "켈틱 크로스", EN: "Celtic Cross"},
	Description: Text{KO: "10장의 전통 스프레드로 상황을 다각도로 조망합니다.", EN: "A classic 10-card spread to view the situation from many angles."},
	QuestionPlaceholder: Text{
		KO: "깊이 들여다보고 싶은 질문을 적어보세요 (선택)",
		EN: "Write the deep question you want to explore (optional)",
	},
	Layout: Layout{Columns: 4, Rows: 4},
	Positions: []Position{
		{
			Slot:        "celtic_present",
			Title:       Text{KO: "현재 상황", EN: "Present Situation"},
			Description: Text{KO: "리딩의 중심 주제", EN: "Core theme of the reading."},
			Order:       1,
			Placement:   Placement{Column: 1, Row: 1},
		},
		{
			Slot:        "celtic_crossing",
			Title:       Text{KO: "교차 에너지", EN: "Crossing Energy"},
			Description: Text{KO: "도전 혹은 보완 요소", EN: "Challenge or assisting factor."},
			Order:       2,
			Placement:   Placement{Column: 1, Row: 1, Rotation: 90, ZIndex: 1},
		},
		{
			Slot:        "celtic_foundation",
			Title:       Text{KO: "근본 원인", EN: "Foundation"},
			Description: Text{KO: "숨은 뿌리, 무의식", EN: "Hidden roots or subconscious."},
			Order:       3,
			Placement:   Placement{Column: 1, Row: 2},
		},
		{
			Slot:        "celtic_past",
			Title:       Text{KO: "최근 과거", EN: "Recent Past"},
			Description: Text{KO: "지나간 영향", EN: "Influence that has passed."},
			Order:       4,
			Placement:   Placement{Column: 0, Row: 1},
		},
		{
			Slot:        "celtic_conscious",
			Title:       Text{KO: "의식 / 가능성", EN: "Conscious / Potential"},
			Description: Text{KO: "상황이 향하는 상단", EN: "Where things are consciously headed."},
			Order:       5,
			Placement:   Placement{Column: 1, Row: 0},
		},
		{
			Slot:        "celtic_near_future",
			Title:       Text{KO: "다가올 일", EN: "Near Future"},
			Description: Text{KO: "머지않아 다가올 기류", EN: "Energy arriving soon."},
			Order:       6,
			Placement:   Placement{Column: 2, Row: 1},
		},
		{
			Slot:        "celtic_self",
			Title:       Text{KO: "나 자신", EN: "Self"},
			Description: Text{KO: "질문자 상태", EN: "State of the querent."},
			Order:       7,
			Placement:   Placement{Column: 3, Row: 0},
		},
		{
			Slot:        "celtic_environment",
			Title:       Text{KO: "환경 / 타인", EN: "Environment / Others"},
			Description: Text{KO: "주변에서 오는 영향", EN: "Influences from surroundings."},
			Order:       8,
			Placement:   Placement{Column: 3, Row: 1},
		},
		{
			Slot:        "celtic_hopes",
			Title:       Text{KO: "희망과 두려움", EN: "Hopes and Fears"},
			Description: Text{KO: "마음이 품은 양면", EN: "What the heart hopes for and fears."},
			Order:       9,
			Placement:   Placement{Column: 3, Row: 2},
		},
		{
			Slot:        "celtic_outcome",
			Title:       Text{KO: "잠재적 결과", EN: "Potential Outcome"},
			Description: Text{KO: "전체 흐름이 닿을 곳", EN: "Where the overall flow may land."},
			Order:       10,
			Placement:   Placement{Column: 3, Row: 3},
		},
	},
	DefaultUseReversed: true,
}

var builtin = NewCatalog(TypePastPresentFuture,
	oneCard,
	energyAdvice,
	pastPresentFuture,
	pathForward,
	celticCross,
)

// Builtin returns the catalog of spreads shipped with midori.
func Builtin() *Catalog {
	return builtin
}
