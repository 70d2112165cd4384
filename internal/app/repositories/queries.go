package repositories

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/hogwarts/internal/app/models"
	"github.com/yigit/hogwarts/internal/pkg/helpers"
)

// studentQueries builds the student SQL shared by the PostgreSQL and SQLite gateways.
// Only the placeholder format differs between the two.
type studentQueries struct {
	sb squirrel.StatementBuilderType
}

func (q studentQueries) selectStudents() squirrel.SelectBuilder {
	// A student without faculty scans as faculty id 0
	return q.sb.Select(
		"s.id", "s.name", "s.age",
		"COALESCE(f.id, 0)", "COALESCE(f.name, '')", "COALESCE(f.color, '')",
	).
		From("students s").
		LeftJoin("faculties f ON f.id = s.faculty_id")
}

func (q studentQueries) getByID(id int64) (string, []interface{}, error) {
	return q.selectStudents().Where(squirrel.Eq{"s.id": id}).Limit(1).ToSql()
}

func (q studentQueries) insert(student *models.Student) (string, []interface{}, error) {
	return q.sb.Insert("students").
		Columns("name", "age", "faculty_id").
		Values(student.Name, student.Age, helpers.GetNullInt64(student.FacultyID())).
		Suffix("RETURNING id").
		ToSql()
}

func (q studentQueries) update(student *models.Student) (string, []interface{}, error) {
	return q.sb.Update("students").
		SetMap(map[string]interface{}{
			"name":       student.Name,
			"age":        student.Age,
			"faculty_id": helpers.GetNullInt64(student.FacultyID()),
		}).
		Where(squirrel.Eq{"id": student.ID}).
		ToSql()
}

func (q studentQueries) delete(id int64) (string, []interface{}, error) {
	return q.sb.Delete("students").Where(squirrel.Eq{"id": id}).ToSql()
}

func (q studentQueries) findByAge(age int) (string, []interface{}, error) {
	return q.selectStudents().Where(squirrel.Eq{"s.age": age}).OrderBy("s.id ASC").ToSql()
}

func (q studentQueries) findByAgeBetween(min, max int) (string, []interface{}, error) {
	return q.selectStudents().
		Where(squirrel.And{squirrel.GtOrEq{"s.age": min}, squirrel.LtOrEq{"s.age": max}}).
		OrderBy("s.id ASC").
		ToSql()
}

func (q studentQueries) findByFacultyID(facultyID int64) (string, []interface{}, error) {
	return q.selectStudents().Where(squirrel.Eq{"s.faculty_id": facultyID}).OrderBy("s.id ASC").ToSql()
}

func (q studentQueries) count() (string, []interface{}, error) {
	return q.sb.Select("COUNT(*)").From("students").ToSql()
}

func (q studentQueries) averageAge() (string, []interface{}, error) {
	return q.sb.Select("COALESCE(AVG(age), 0)").From("students").ToSql()
}

func (q studentQueries) lastFive() (string, []interface{}, error) {
	return q.selectStudents().OrderBy("s.id DESC").Limit(lastStudentsLimit).ToSql()
}

// facultyQueries builds the faculty SQL shared by both gateways
type facultyQueries struct {
	sb squirrel.StatementBuilderType
}

func (q facultyQueries) getByID(id int64) (string, []interface{}, error) {
	return q.sb.Select("id", "name", "color").
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
}

func (q facultyQueries) insert(faculty *models.Faculty) (string, []interface{}, error) {
	return q.sb.Insert("faculties").
		Columns("name", "color").
		Values(faculty.Name, faculty.Color).
		Suffix("RETURNING id").
		ToSql()
}

func (q facultyQueries) update(faculty *models.Faculty) (string, []interface{}, error) {
	return q.sb.Update("faculties").
		SetMap(map[string]interface{}{
			"name":  faculty.Name,
			"color": faculty.Color,
		}).
		Where(squirrel.Eq{"id": faculty.ID}).
		ToSql()
}

// detachStudents clears the faculty of every student referencing it
func (q facultyQueries) detachStudents(id int64) (string, []interface{}, error) {
	return q.sb.Update("students").
		Set("faculty_id", nil).
		Where(squirrel.Eq{"faculty_id": id}).
		ToSql()
}

func (q facultyQueries) delete(id int64) (string, []interface{}, error) {
	return q.sb.Delete("faculties").Where(squirrel.Eq{"id": id}).ToSql()
}

// findByNameOrColor ORs the non-blank criteria. ok is false when both are blank.
func (q facultyQueries) findByNameOrColor(name, color string) (sql string, args []interface{}, ok bool, err error) {
	criteria := squirrel.Or{}
	if strings.TrimSpace(name) != "" {
		criteria = append(criteria, squirrel.Eq{"name": name})
	}
	if strings.TrimSpace(color) != "" {
		criteria = append(criteria, squirrel.Eq{"color": color})
	}
	if len(criteria) == 0 {
		return "", nil, false, nil
	}

	sql, args, err = q.sb.Select("id", "name", "color").
		From("faculties").
		Where(criteria).
		OrderBy("id ASC").
		ToSql()
	return sql, args, true, err
}
