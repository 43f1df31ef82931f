package matching

import "github.com/wonny/vcreview/backend/internal/funds"

// Stage tags: 원본 문자열은 funds 패키지. 태거와 어긋나면 안 된다.
const (
	StageEarly     = funds.StageEarly
	StageGrowth    = funds.StageGrowth
	StageSecondary = funds.StageSecondary
)

// Fund lifecycle phases
const (
	LifecycleActive  = funds.LifecycleActive
	LifecycleMid     = funds.LifecycleMid
	LifecycleHarvest = funds.LifecycleHarvest
)

// angelTag marks 엔젤 특화 펀드 (초기투자 딜의 차선 매칭 대상)
const angelTag = funds.TagAngel

// SectorSynonyms expands a deal sector into related fund sector tags.
// 직접 매칭(동일 태그)과 연관 매칭(나머지)의 점수가 다르다.
var SectorSynonyms = map[string][]string{
	"AI/SW":    {"AI/SW", "딥테크", "반도체"},
	"핀테크/금융":  {"핀테크/금융", "AI/SW"},
	"바이오":     {"바이오"},
	"콘텐츠/엔터":  {"콘텐츠/엔터", "영화/영상", "게임"},
	"에듀테크/교육": {"에듀테크/교육", "AI/SW", "콘텐츠/엔터"},
	"친환경/ESG": {"친환경/ESG", "이차전지/배터리"},
	"모빌리티":    {"모빌리티", "AI/SW"},
	"푸드/농업":   {"푸드/농업"},
	"뷰티/패션":   {"뷰티/패션", "콘텐츠/엔터"},
	"우주/항공":   {"우주/항공", "딥테크", "국방/안보"},
	"반도체":     {"반도체", "소", "딥테크"},
	"로봇/자동화":  {"로봇/자동화", "딥테크", "AI/SW"},
}

// AccountSectorAffinity maps government account programs to the sectors
// they are mandated to invest in (모태펀드 계정별 주목적 투자 분야).
var AccountSectorAffinity = map[string][]string{
	"문화계정":      {"콘텐츠/엔터", "영화/영상", "게임"},
	"과기정통계정":    {"AI/SW", "딥테크", "반도체"},
	"보건계정":      {"바이오"},
	"환경계정":      {"친환경/ESG"},
	"소재부품장비계정":  {"소부장", "반도체"},
	"관광계정":      {"관광/여행"},
	"스포츠계정":     {"스포츠"},
	"해양계정":      {"해양/수산"},
	"교육계정":      {"에듀테크/교육"},
	"국토교통혁신계정":  {"모빌리티", "건설/부동산"},
}

// sectorKeywordMap normalizes free-form deal keywords (Secretary Agent
// output, lowercase english) into canonical sector tags.
var sectorKeywordMap = map[string]string{
	"fintech":       "핀테크/금융",
	"edtech":        "에듀테크/교육",
	"biotech":       "바이오",
	"ai":            "AI/SW",
	"saas":          "AI/SW",
	"content":       "콘텐츠/엔터",
	"ecommerce":     "뷰티/패션",
	"mobility":      "모빌리티",
	"deeptech":      "딥테크",
	"semiconductor": "반도체",
	"energy":        "친환경/ESG",
	"food":          "푸드/농업",
	"gaming":        "게임",
	"healthcare":    "바이오",
	"robotics":      "로봇/자동화",
	"space":         "우주/항공",
}

// stageKeywordMap normalizes funding-round names into canonical stage tags.
var stageKeywordMap = map[string]string{
	"pre-seed": StageEarly,
	"seed":     StageEarly,
	"series-a": StageEarly,
	"series-b": StageGrowth,
	"series-c": StageGrowth,
	"growth":   StageGrowth,
	"late":     StageGrowth,
}
