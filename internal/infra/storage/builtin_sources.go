package storage

import "daily-briefing/internal/domain/entity"

// BuiltinSources is the fixed source list used when SOURCES_MODE=builtin.
// Ten feeds per category.
var BuiltinSources = []entity.Source{
	// Local
	{ID: "L1", Name: "Honolulu Star-Advertiser", URL: "https://www.staradvertiser.com/feed/", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},
	{ID: "L2", Name: "KITV", URL: "https://www.kitv.com/feed/", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},
	{ID: "L3", Name: "Hawaii News Now", URL: "https://www.hawaiinewsnow.com/rss/", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},
	{ID: "L4", Name: "Hawaii Public Radio", URL: "https://www.hawaiipublicradio.org/rss/", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},
	{ID: "L5", Name: "Maui Now", URL: "https://mauinow.com/feed/", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},
	{ID: "L6", Name: "Big Island Now", URL: "https://bigislandnow.com/feed/", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},
	{ID: "L7", Name: "West Hawaii Today", URL: "https://www.westhawaiitoday.com/feed/", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},
	{ID: "L8", Name: "KHON2", URL: "https://www.khon2.com/feed/", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},
	{ID: "L9", Name: "Civil Beat", URL: "https://www.civilbeat.org/feed/", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},
	{ID: "L10", Name: "Pacific Business News", URL: "https://www.bizjournals.com/pacific/feed/rss", Type: entity.SourceTypeNews, Category: "Local", Enabled: true},

	// World
	{ID: "W1", Name: "BBC World", URL: "http://feeds.bbci.co.uk/news/world/rss.xml", Type: entity.SourceTypeNews, Category: "World", Enabled: true},
	{ID: "W2", Name: "Reuters World", URL: "https://www.reutersagency.com/feed/?best-topics=world-news", Type: entity.SourceTypeNews, Category: "World", Enabled: true},
	{ID: "W3", Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Type: entity.SourceTypeNews, Category: "World", Enabled: true},
	{ID: "W4", Name: "The Guardian World", URL: "https://www.theguardian.com/world/rss", Type: entity.SourceTypeNews, Category: "World", Enabled: true},
	{ID: "W5", Name: "DW News", URL: "https://rss.dw.com/rdf/rss-en-all", Type: entity.SourceTypeNews, Category: "World", Enabled: true},
	{ID: "W6", Name: "France 24", URL: "https://www.france24.com/en/rss", Type: entity.SourceTypeNews, Category: "World", Enabled: true},
	{ID: "W7", Name: "AP News World", URL: "https://rsshub.app/apnews/topics/world-news", Type: entity.SourceTypeNews, Category: "World", Enabled: true},
	{ID: "W8", Name: "NPR World", URL: "https://feeds.npr.org/1004/rss.xml", Type: entity.SourceTypeNews, Category: "World", Enabled: true},
	{ID: "W9", Name: "South China Morning Post", URL: "https://www.scmp.com/rss/91/feed", Type: entity.SourceTypeNews, Category: "World", Enabled: true},
	{ID: "W10", Name: "Japan Times", URL: "https://www.japantimes.co.jp/feed/", Type: entity.SourceTypeNews, Category: "World", Enabled: true},

	// US Politics
	{ID: "P1", Name: "Politico", URL: "https://www.politico.com/rss/politicopicks.xml", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},
	{ID: "P2", Name: "The Hill", URL: "https://thehill.com/feed/", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},
	{ID: "P3", Name: "Roll Call", URL: "https://www.rollcall.com/feed/", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},
	{ID: "P4", Name: "RealClearPolitics", URL: "https://www.realclearpolitics.com/index.xml", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},
	{ID: "P5", Name: "C-SPAN", URL: "https://www.c-span.org/rss/", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},
	{ID: "P6", Name: "Washington Post Politics", URL: "https://feeds.washingtonpost.com/rss/politics", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},
	{ID: "P7", Name: "NYT Politics", URL: "https://rss.nytimes.com/services/xml/rss/nyt/Politics.xml", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},
	{ID: "P8", Name: "Axios", URL: "https://api.axios.com/feed/", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},
	{ID: "P9", Name: "The Intercept", URL: "https://theintercept.com/feed/?rss", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},
	{ID: "P10", Name: "FiveThirtyEight", URL: "https://fivethirtyeight.com/politics/feed/", Type: entity.SourceTypeNews, Category: "US Politics", Enabled: true},

	// Tech
	{ID: "T1", Name: "Hacker News", URL: "https://news.ycombinator.com/rss", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "T2", Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "T3", Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "T4", Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "T5", Name: "Wired", URL: "https://www.wired.com/feed/rss", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "T6", Name: "AnandTech", URL: "https://www.anandtech.com/rss/", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "T7", Name: "Tom's Hardware", URL: "https://www.tomshardware.com/feeds/all", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "T8", Name: "Engadget", URL: "https://www.engadget.com/rss.xml", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "T9", Name: "9to5Mac", URL: "https://9to5mac.com/feed/", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "T10", Name: "The Register", URL: "https://www.theregister.com/headlines.atom", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},

	// AI
	{ID: "A1", Name: "OpenAI Blog", URL: "https://openai.com/blog/rss.xml", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "A2", Name: "Google AI Blog", URL: "https://blog.google/technology/ai/rss/", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "A3", Name: "Anthropic", URL: "https://www.anthropic.com/feed", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "A4", Name: "Hugging Face Blog", URL: "https://huggingface.co/blog/feed.xml", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "A5", Name: "AI Breakfast", URL: "https://aibreakfast.beehiiv.com/feed", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "A6", Name: "The Batch", URL: "https://www.deeplearning.ai/the-batch/feed/", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "A7", Name: "Import AI", URL: "https://importai.substack.com/feed", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "A8", Name: "MIT Tech Review AI", URL: "https://www.technologyreview.com/topic/artificial-intelligence/feed", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "A9", Name: "VentureBeat AI", URL: "https://venturebeat.com/category/ai/feed/", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "A10", Name: "AI Weekly", URL: "https://aiweekly.co/issues.rss", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},

	// Finance
	{ID: "F1", Name: "Bloomberg", URL: "https://feeds.bloomberg.com/markets/news.rss", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},
	{ID: "F2", Name: "CNBC", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},
	{ID: "F3", Name: "Financial Times", URL: "https://www.ft.com/rss/home", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},
	{ID: "F4", Name: "MarketWatch", URL: "https://feeds.marketwatch.com/marketwatch/topstories/", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},
	{ID: "F5", Name: "WSJ Markets", URL: "https://feeds.a.dj.com/rss/RSSMarketsMain.xml", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},
	{ID: "F6", Name: "Yahoo Finance", URL: "https://finance.yahoo.com/rss/", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},
	{ID: "F7", Name: "Seeking Alpha", URL: "https://seekingalpha.com/market_currents.xml", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},
	{ID: "F8", Name: "The Motley Fool", URL: "https://www.fool.com/feeds/index.aspx", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},
	{ID: "F9", Name: "Barron's", URL: "https://www.barrons.com/rss", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},
	{ID: "F10", Name: "Investopedia", URL: "https://www.investopedia.com/feedbuilder/feed/getfeed?feedName=rss_headline", Type: entity.SourceTypeNews, Category: "Finance", Enabled: true},

	// Science
	{ID: "S1", Name: "NASA", URL: "https://www.nasa.gov/rss/dyn/breaking_news.rss", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "S2", Name: "Nature", URL: "https://www.nature.com/nature.rss", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "S3", Name: "Science Daily", URL: "https://www.sciencedaily.com/rss/all.xml", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "S4", Name: "New Scientist", URL: "https://www.newscientist.com/feed/home/", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "S5", Name: "Phys.org", URL: "https://phys.org/rss-feed/", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "S6", Name: "Ars Technica Science", URL: "https://feeds.arstechnica.com/arstechnica/science", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "S7", Name: "Popular Science", URL: "https://www.popsci.com/feed/", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "S8", Name: "Scientific American", URL: "https://www.scientificamerican.com/feed/", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "S9", Name: "Live Science", URL: "https://www.livescience.com/feeds/all", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "S10", Name: "MIT Tech Review", URL: "https://www.technologyreview.com/feed/", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
}

// DefaultSources seeds news-sources.json on first run in file mode.
var DefaultSources = []entity.Source{
	{ID: "1", Name: "BBC News", URL: "http://feeds.bbci.co.uk/news/rss.xml", Type: entity.SourceTypeNews, Category: "General", Enabled: true},
	{ID: "2", Name: "Reuters World", URL: "https://www.reutersagency.com/feed/?best-topics=world-news", Type: entity.SourceTypeNews, Category: "General", Enabled: true},
	{ID: "3", Name: "Hacker News", URL: "https://news.ycombinator.com/rss", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "4", Name: "The Verge", URL: "https://www.theverge.com/rss/index.xml", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "5", Name: "TechCrunch", URL: "https://feeds.feedburner.com/TechCrunch/", Type: entity.SourceTypeNews, Category: "Tech", Enabled: true},
	{ID: "6", Name: "NASA Breaking News", URL: "https://www.nasa.gov/rss/dyn/breaking_news.rss", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "7", Name: "Nature", URL: "https://www.nature.com/nature.rss", Type: entity.SourceTypeNews, Category: "Science", Enabled: true},
	{ID: "8", Name: "OpenAI Blog", URL: "https://openai.com/news/rss.xml", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "9", Name: "AI Breakfast", URL: "https://aibreakfast.beehiiv.com/rss", Type: entity.SourceTypeNews, Category: "AI", Enabled: true},
	{ID: "10", Name: "Lex Fridman", URL: "https://lexfridman.com/feed/podcast/", Type: entity.SourceTypePodcast, Category: "Podcasts", Enabled: true},
	{ID: "11", Name: "Daily Tech News Show", URL: "http://feeds.feedburner.com/DailyTechNewsShow", Type: entity.SourceTypePodcast, Category: "Podcasts", Enabled: true},
}
