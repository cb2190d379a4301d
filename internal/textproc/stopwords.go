package textproc

// informalIndonesian supplements the Sastrawi base dictionary with
// abbreviations and particles common in TikTok captions that the formal
// list misses.
var informalIndonesian = toSet([]string{
	"yg", "ga", "gak", "nggak", "engga", "gk", "aja", "nya", "dong", "sih",
	"deh", "nih", "banget", "bgt", "dgn", "utk", "dr", "km", "aku", "kak",
	"ya", "yuk", "loh", "lho", "kok", "gitu", "gini", "udah", "udh", "tau",
	"kalo", "klo", "krn", "karna", "jd", "jgn", "sm", "tp", "trs", "lg",
	"pke", "pake", "emang", "emg", "bs", "bisa", "skrg", "dlm", "sy", "gue",
	"gw", "lu", "kamu", "kita", "min", "ka",
})

// englishStopwords mirrors the NLTK English stopword corpus the analysis
// was tuned against. It is a data table, not logic: the snowball stemmer
// package keeps its own copy unexported.
var englishStopwords = toSet([]string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
	"your", "yours", "yourself", "yourselves", "he", "him", "his",
	"himself", "she", "her", "hers", "herself", "it", "its", "itself",
	"they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "these", "those", "am", "is", "are",
	"was", "were", "be", "been", "being", "have", "has", "had", "having",
	"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
	"or", "because", "as", "until", "while", "of", "at", "by", "for",
	"with", "about", "against", "between", "into", "through", "during",
	"before", "after", "above", "below", "to", "from", "up", "down", "in",
	"out", "on", "off", "over", "under", "again", "further", "then",
	"once", "here", "there", "when", "where", "why", "how", "all", "any",
	"both", "each", "few", "more", "most", "other", "some", "such", "no",
	"nor", "not", "only", "own", "same", "so", "than", "too", "very", "s",
	"t", "can", "will", "just", "don", "should", "now", "d", "ll", "m",
	"o", "re", "ve", "y", "ain", "aren", "couldn", "didn", "doesn",
	"hadn", "hasn", "haven", "isn", "ma", "mightn", "mustn", "needn",
	"shan", "shouldn", "wasn", "weren", "won", "wouldn",
})

func toSet(words []string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
