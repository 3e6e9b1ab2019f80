package domain

type Overview struct {
	UsersByStatus map[UserStatus]int64
	UsersByRole   map[Role]int64
	ToolsByStatus map[ToolStatus]int64

	TotalUsers      int64
	TotalTools      int64
	TotalCategories int64
	TotalReviews    int64
	TotalLikes      int64
	TotalViews      int64
}
