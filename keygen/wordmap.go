package keygen

// DefaultWords is the best-effort character to token table used when no
// key-suggestion provider is configured. It is biased toward game UI text.
var DefaultWords = map[rune]string{
	// gacha
	'抽': "DRAW", '卡': "CARD", '道': "ITEM", '具': "PROP",
	'足': "SUFFICIENT", '不': "NOT", '再': "RE", '结': "OATH",
	'义': "BIND", '次': "TIME", '必': "MUST", '得': "OBTAIN",
	'红': "RED", '将': "GENERAL", '累': "TOTAL", '计': "COUNT",
	'总': "TOTAL", '源': "SOURCE",

	// common UI
	'确': "CONFIRM", '认': "CONFIRM", '购': "PURCHASE",
	'买': "BUY", '这': "THIS", '个': "GE", '吗': "QUESTION",
	'请': "PLEASE", '拖': "DRAG", '拽': "DROP", '指': "SPECIFY",
	'定': "FIXED", '位': "POSITION", '物': "ITEM",
	'品': "PRODUCT", '数': "NUMBER", '量': "AMOUNT",
	'无': "CANNOT", '法': "ABLE", '完': "COMPLETE", '成': "COMPLETE",
	'取': "GET", '消': "CANCEL",

	// exploration and stages
	'探': "EXPLORE", '索': "SEARCH", '度': "DEGREE",
	'推': "RECOMMEND", '荐': "RECOMMEND", '战': "BATTLE",
	'力': "POWER", '等': "LEVEL", '阵': "LINEUP",
	'容': "CONTAINER", '为': "IS", '空': "EMPTY",
	'跳': "JUMP", '过': "PASS",
	'主': "MAIN", '线': "LINE", '尚': "NOT",
	'未': "UN", '解': "UNLOCK", '锁': "LOCK",

	// paths and maps
	'路': "PATH", '径': "WAY", '点': "POINT",
	'错': "ERROR", '误': "ERROR", '需': "NEED",
	'地': "MAP", '图': "MAP", '资': "ASSET",
	'态': "STATE", '信': "INFO",
	'息': "TION", '显': "SHOW", '示': "SHOW",

	// rewards and tasks
	'奖': "REWARD", '励': "INCENTIVE", '务': "TASK",
	'败': "FAIL", '功': "SUCCESS", '胜': "VICTORY", '利': "PROFIT",
	'恭': "CONGRATULATE", '喜': "JOY",

	// actions
	'返': "BACK", '回': "RETURN", '关': "CLOSE",
	'闭': "CLOSE", '打': "OPEN", '开': "OPEN",
	'设': "SET", '置': "TING", '选': "OPTION",
	'项': "ITEM", '提': "TIP", '警': "WARNING",
	'告': "ALERT", '可': "CAN", '以': "ABLE",
	'任': "APPOINT", '命': "NAME", '州': "STATE",
	'牧': "GOVERNOR", '获': "GET",
	'额': "EXTRA", '外': "EXTRA", '占': "OCCUPY",
	'领': "LEAD", '产': "OUTPUT", '出': "OUTPUT",
	'加': "BONUS", '准': "PREPARE", '备': "READY", '始': "BEGIN",

	// battle
	'敌': "ENEMY", '方': "SIDE", '还': "STILL", '有': "HAVE",
	'单': "SINGLE", '斗': "FIGHT",
}
