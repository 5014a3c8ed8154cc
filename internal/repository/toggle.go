package repository

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// toggleRow 在一个事务里完成"存在则删除、不存在则插入"，返回操作后记录是否存在。
// 依赖表上的唯一索引：并发插入同一行时 ON CONFLICT DO NOTHING，不会产生重复记录。
func toggleRow(db *gorm.DB, row interface{}, query string, args ...interface{}) (bool, error) {
	exists := false
	err := db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where(query, args...).Delete(row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern 构造大小写不敏感的子串匹配模式，查询词里的通配符按字面量处理
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
