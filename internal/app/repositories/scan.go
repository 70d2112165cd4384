package repositories

import "github.com/yigit/hogwarts/internal/app/models"

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// rowIterator is the part of pgx.Rows and *sql.Rows the collectors need
type rowIterator interface {
	rowScanner
	Next() bool
	Err() error
}

func scanStudent(row rowScanner) (*models.Student, error) {
	student := &models.Student{}
	var facultyID int64
	var facultyName, facultyColor string

	if err := row.Scan(&student.ID, &student.Name, &student.Age, &facultyID, &facultyName, &facultyColor); err != nil {
		return nil, err
	}
	if facultyID != 0 {
		student.Faculty = &models.Faculty{ID: facultyID, Name: facultyName, Color: facultyColor}
	}
	return student, nil
}

func scanFaculty(row rowScanner) (*models.Faculty, error) {
	faculty := &models.Faculty{}
	if err := row.Scan(&faculty.ID, &faculty.Name, &faculty.Color); err != nil {
		return nil, err
	}
	return faculty, nil
}

// collectStudents drains rows; the result is never nil so it encodes as []
func collectStudents(rows rowIterator) ([]*models.Student, error) {
	students := []*models.Student{}
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return students, nil
}

func collectFaculties(rows rowIterator) ([]*models.Faculty, error) {
	faculties := []*models.Faculty{}
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, err
		}
		faculties = append(faculties, faculty)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return faculties, nil
}
