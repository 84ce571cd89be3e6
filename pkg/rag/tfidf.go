package rag

import (
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// TFIDFVectorizer TF-IDF 向量化器
//
// 用于上下文文档的本地相似度检索，无需外部 API。
type TFIDFVectorizer struct {
	vocabulary map[string]int // 词汇表：词 -> 索引
	idf        []float32      // 逆文档频率
	mu         sync.RWMutex
}

// NewTFIDFVectorizer 创建 TF-IDF 向量化器
func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{
		vocabulary: make(map[string]int),
		idf:        make([]float32, 0),
	}
}

// tokenize 分词
//
// 支持英文空格分词和中文字符分词。
func (v *TFIDFVectorizer) tokenize(text string) []string {
	text = strings.ToLower(text)
	var tokens []string
	var currentWord strings.Builder

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			// 中文字符单独成词
			if unicode.Is(unicode.Han, r) {
				if currentWord.Len() > 0 {
					tokens = append(tokens, currentWord.String())
					currentWord.Reset()
				}
				tokens = append(tokens, string(r))
			} else {
				currentWord.WriteRune(r)
			}
		} else {
			if currentWord.Len() > 0 {
				tokens = append(tokens, currentWord.String())
				currentWord.Reset()
			}
		}
	}

	if currentWord.Len() > 0 {
		tokens = append(tokens, currentWord.String())
	}

	return tokens
}

// Fit 训练向量化器
//
// 根据文档集合构建词汇表和计算 IDF。
func (v *TFIDFVectorizer) Fit(documents []string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	// 统计每个词出现过的文档数
	wordDocCount := make(map[string]int)
	allWords := make(map[string]struct{})

	for _, doc := range documents {
		tokens := v.tokenize(doc)
		seen := make(map[string]struct{})
		for _, token := range tokens {
			allWords[token] = struct{}{}
			if _, ok := seen[token]; !ok {
				wordDocCount[token]++
				seen[token] = struct{}{}
			}
		}
	}

	// 构建词汇表（按字母顺序排序以保证一致性）
	words := make([]string, 0, len(allWords))
	for word := range allWords {
		words = append(words, word)
	}
	sort.Strings(words)

	v.vocabulary = make(map[string]int, len(words))
	for i, word := range words {
		v.vocabulary[word] = i
	}

	// 计算 IDF
	v.idf = make([]float32, len(words))
	n := float64(len(documents))
	for word, idx := range v.vocabulary {
		df := float64(wordDocCount[word])
		v.idf[idx] = float32(math.Log(n/df) + 1.0)
	}
}

// Transform 将文本转换为 TF-IDF 向量（已 L2 归一化）
func (v *TFIDFVectorizer) Transform(text string) []float32 {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if len(v.vocabulary) == 0 {
		return nil
	}

	tokens := v.tokenize(text)
	if len(tokens) == 0 {
		return make([]float32, len(v.vocabulary))
	}

	// 计算 TF
	tf := make(map[string]int)
	for _, token := range tokens {
		tf[token]++
	}

	vector := make([]float32, len(v.vocabulary))
	for word, count := range tf {
		if idx, ok := v.vocabulary[word]; ok {
			// TF = log(1 + count)
			tfValue := float32(math.Log(1 + float64(count)))
			vector[idx] = tfValue * v.idf[idx]
		}
	}

	normalize(vector)

	return vector
}

// VocabularySize 返回词汇表大小
func (v *TFIDFVectorizer) VocabularySize() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.vocabulary)
}

// normalize L2 归一化
func normalize(vector []float32) {
	var norm float32
	for _, val := range vector {
		norm += val * val
	}
	if norm > 0 {
		norm = float32(math.Sqrt(float64(norm)))
		for i := range vector {
			vector[i] /= norm
		}
	}
}

// CosineSimilarity 计算余弦相似度
//
// 两个向量均已归一化时等价于点积。
func CosineSimilarity(vec1, vec2 []float32) float32 {
	if len(vec1) != len(vec2) || len(vec1) == 0 {
		return 0
	}

	var dot float32
	for i := range vec1 {
		dot += vec1[i] * vec2[i]
	}
	return dot
}
