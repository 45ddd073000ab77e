package registry

// defaultEntries is the built-in table of funds seen in user screenshots.
var defaultEntries = []Entry{
	{Name: "博时黄金ETF联接A", Code: "002610"},
	{Name: "永赢半导体产业智选混合C", Code: "015968"},
	{Name: "国泰黄金ETF联接C", Code: "004253"},
	{Name: "银华集成电路混合C", Code: "013841"},
	{Name: "易方达储能电池ETF联接C", Code: "021034"},
	{Name: "华夏有色金属ETF联接D", Code: "021534"},
	{Name: "兴全合润混合A", Code: "163406"},
	{Name: "广发多因子混合", Code: "002943"},
	{Name: "易方达优质企业三年持有期混合", Code: "009342"},
	{Name: "鹏华丰享债券", Code: "003401"},
	{Name: "广发纯债债券C", Code: "270049"},
	{Name: "永赢医药创新智选", Code: "015915"},
	{Name: "易方达沪深300ETF联接A", Code: "110020"},
	{Name: "天弘恒生科技ETF联接A", Code: "012804"},
	{Name: "广发纳斯达克100ETF联接(QDII)C", Code: "006479"},
	{Name: "永赢先进制造智选混合C", Code: "015911"},
	{Name: "永赢高端装备智选混合A", Code: "015912"},
	{Name: "永赢高端装备智选混合C", Code: "015913"},
	{Name: "永赢信息产业智选混合C", Code: "015917"},
	{Name: "嘉实中证稀土产业ETF联接C", Code: "011036"},
	{Name: "永赢医药创新智选混合C", Code: "015915"},
	{Name: "易方达均衡成长股票", Code: "008985"},
	{Name: "广发全球医疗保健指数(QDII)A", Code: "000369"},
	{Name: "招商纳斯达克100ETF发起式联接", Code: "016055"},
	{Name: "南方标普中国A股大盘红利低波", Code: "008163"},
	{Name: "国富亚洲机会股票(QDII)C", Code: "008240"},
	{Name: "摩根纳斯达克100指数(QDII)C", Code: "017116"},
	{Name: "摩根纳斯达克100指数(QDII)A", Code: "017115"},
	{Name: "摩根标普500指数(QDII)A", Code: "017641"},
}

var defaultRegistry = New(defaultEntries)

// Default returns the process-wide built-in registry.
func Default() *Registry {
	return defaultRegistry
}
