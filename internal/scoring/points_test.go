package scoring

import "testing"

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		percentile int
		want       GradeLabel
	}{
		{100, GradeA}, {90, GradeA}, {89, GradeB},
		{66, GradeB}, {65, GradeC},
		{33, GradeC}, {32, GradeD}, {0, GradeD},
	}
	for _, c := range cases {
		if got := Grade(c.percentile); got != c.want {
			t.Fatalf("Grade(%d) = %s, want %s", c.percentile, got, c.want)
		}
	}
}

func TestPercentileAndRank(t *testing.T) {
	scores := []int{0, 10, 20, 30}

	// 20 分：4 人中低于自己的有 2 人，round(2/3*100)=67
	if got := Percentile(20, scores); got != 67 {
		t.Fatalf("expected percentile 67, got %d", got)
	}
	if got := RankPosition(20, scores); got != 2 {
		t.Fatalf("expected rank 2, got %d", got)
	}

	// 极值：严格最高 100，最低（含并列最低）0
	if got := Percentile(30, scores); got != 100 {
		t.Fatalf("strict max must be percentile 100, got %d", got)
	}
	if got := RankPosition(30, scores); got != 1 {
		t.Fatalf("strict max must rank 1, got %d", got)
	}
	if got := Percentile(0, scores); got != 0 {
		t.Fatalf("lowest must be percentile 0, got %d", got)
	}
}

func TestPercentileSmallPopulations(t *testing.T) {
	if got := Percentile(5, nil); got != 100 {
		t.Fatalf("empty population must be 100, got %d", got)
	}
	if got := Percentile(5, []int{5}); got != 100 {
		t.Fatalf("single-member population must be 100, got %d", got)
	}
}

func TestRankSharedOnTie(t *testing.T) {
	scores := []int{100, 100, 50}
	if got := RankPosition(100, scores); got != 1 {
		t.Fatalf("tied top scores must both rank 1, got %d", got)
	}
	if got := RankPosition(50, scores); got != 3 {
		t.Fatalf("score below two others must rank 3, got %d", got)
	}
}

func TestMaxPoints(t *testing.T) {
	if got := MaxPoints(4); got != 60 {
		t.Fatalf("expected 60, got %d", got)
	}
}
