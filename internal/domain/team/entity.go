package team

type Team struct {
	ID        int64
	Name      string
	ManagerID *int64
}
