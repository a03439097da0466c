// timesheetctl tareas de administración: migraciones y alta del primer admin.
//
// Uso:
//
//	timesheetctl migrate
//	timesheetctl seed-admin --email admin@example.com --password secreto
package main

func main() {
	Execute()
}
