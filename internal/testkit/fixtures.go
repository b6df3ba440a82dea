package testkit

import (
	"poemnames/domain/lexicon"
	"poemnames/models"
)

// FixtureEntries returns a small curated lexicon: every element and gender
// occurs, tone buckets vary, and one function word is present so pipeline
// tests can exercise the rejection paths.
func FixtureEntries() []lexicon.Entry {
	return []lexicon.Entry{
		{Character: "文", Pinyin: "wen2", Element: lexicon.ElementWater, Gender: lexicon.GenderNeutral, Affinity: lexicon.AffinityWeak, Tags: []string{"文静", "古典"}, Frequency: 980, Meaning: "refined, literary grace"},
		{Character: "雅", Pinyin: "ya3", Element: lexicon.ElementWood, Gender: lexicon.GenderFemale, Affinity: lexicon.AffinityMedium, Tags: []string{"优雅", "高贵"}, Frequency: 860, Meaning: "elegance"},
		{Character: "慧", Pinyin: "hui4", Element: lexicon.ElementWater, Gender: lexicon.GenderFemale, Affinity: lexicon.AffinityStrong, Tags: []string{"智慧", "聪颖"}, Frequency: 820, Meaning: "wisdom"},
		{Character: "刚", Pinyin: "gang1", Element: lexicon.ElementMetal, Gender: lexicon.GenderMale, Affinity: lexicon.AffinityStrong, Tags: []string{"刚强", "勇敢"}, Frequency: 640, Meaning: "firmness"},
		{Character: "宇", Pinyin: "yu3", Element: lexicon.ElementEarth, Gender: lexicon.GenderMale, Affinity: lexicon.AffinityMedium, Tags: []string{"君子"}, Frequency: 910, Meaning: "cosmos, bearing"},
		{Character: "婷", Pinyin: "ting2", Element: lexicon.ElementFire, Gender: lexicon.GenderFemale, Affinity: lexicon.AffinityStrong, Tags: []string{"美丽", "优雅"}, Frequency: 700, Meaning: "graceful"},
		{Character: "德", Pinyin: "de2", Element: lexicon.ElementFire, Gender: lexicon.GenderMale, Affinity: lexicon.AffinityMedium, Tags: []string{"德行", "君子"}, Frequency: 560, Meaning: "virtue"},
		{Character: "静", Pinyin: "jing4", Element: lexicon.ElementMetal, Gender: lexicon.GenderFemale, Affinity: lexicon.AffinityMedium, Tags: []string{"文静", "温柔"}, Frequency: 750, Meaning: "stillness"},
		{Character: "涵", Pinyin: "han2", Element: lexicon.ElementWater, Gender: lexicon.GenderNeutral, Affinity: lexicon.AffinityWeak, Tags: []string{"智慧", "诗意"}, Frequency: 680, Meaning: "to contain, depth"},
		{Character: "强", Pinyin: "qiang2", Element: lexicon.ElementWood, Gender: lexicon.GenderMale, Affinity: lexicon.AffinityStrong, Tags: []string{"刚强"}, Frequency: 590, Meaning: "strength"},
		{Character: "梅", Pinyin: "mei2", Element: lexicon.ElementWood, Gender: lexicon.GenderFemale, Affinity: lexicon.AffinityMedium, Tags: []string{"美好", "古典"}, Frequency: 430, Meaning: "plum blossom"},
		{Character: "泽", Pinyin: "ze2", Element: lexicon.ElementWater, Gender: lexicon.GenderMale, Affinity: lexicon.AffinityMedium, Tags: []string{"恩泽", "诗意"}, Frequency: 520, Meaning: "beneficence, marsh"},
		{Character: "安", Pinyin: "an1", Element: lexicon.ElementEarth, Gender: lexicon.GenderNeutral, Affinity: lexicon.AffinityWeak, Tags: []string{"美好"}, Frequency: 470, Meaning: "peace"},
		{Character: "之", Pinyin: "zhi1", Element: lexicon.ElementFire, Gender: lexicon.GenderNeutral, Affinity: lexicon.AffinityWeak, Frequency: 300, Meaning: "of", FunctionWord: true},
	}
}

// FixtureSurnames returns the surnames the fixture lexicon pairs with.
func FixtureSurnames() []models.Surname {
	return []models.Surname{
		{Name: "李", Pinyin: "li3", Meaning: "plum", Origin: "one of the oldest recorded surnames"},
		{Name: "王", Pinyin: "wang2", Meaning: "king", Origin: "royal descent lines of the Zhou"},
		{Name: "陈", Pinyin: "chen2", Meaning: "to arrange", Origin: "the ancient state of Chen"},
	}
}

// FixturePoetry maps characters to source text titles for origin lookups.
func FixturePoetry() map[string][]string {
	return map[string][]string{
		"梅": {"墨梅", "卜算子·咏梅"},
		"静": {"静夜思"},
		"文": {"论语·雍也"},
		"泽": {"离骚"},
	}
}
