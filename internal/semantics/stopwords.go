package semantics

// stopwords is a standard English function-word list. Filtering these
// before vectorizing keeps the score focused on content words, so that
// removing fillers or articles does not read as a change in meaning.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "also",
		"am", "an", "and", "any", "are", "as", "at",
		"be", "because", "been", "before", "being", "below", "between",
		"both", "but", "by",
		"can", "cannot", "could",
		"did", "do", "does", "doing", "down", "during",
		"each", "either", "etc", "ever", "every",
		"few", "for", "from", "further",
		"had", "has", "have", "having", "he", "her", "here", "hers",
		"herself", "him", "himself", "his", "how", "however",
		"i", "if", "in", "indeed", "into", "is", "it", "its", "itself",
		"just",
		"kindly",
		"may", "me", "might", "more", "most", "much", "must", "my",
		"myself",
		"neither", "no", "nor", "not", "now",
		"of", "off", "on", "once", "only", "onto", "or", "other", "ought",
		"our", "ours", "ourselves", "out", "over", "own",
		"per", "perhaps", "please",
		"quite",
		"rather", "really",
		"same", "shall", "she", "should", "simply", "so", "some", "such",
		"than", "that", "the", "their", "theirs", "them", "themselves",
		"then", "there", "these", "they", "this", "those", "though",
		"through", "thus", "to", "too",
		"under", "until", "up", "upon",
		"very", "via",
		"was", "we", "were", "what", "when", "where", "whether", "which",
		"while", "who", "whom", "why", "will", "with", "within", "without",
		"would",
		"yet", "you", "your", "yours", "yourself", "yourselves",
	} {
		stopwords[w] = struct{}{}
	}
}

func isStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}
